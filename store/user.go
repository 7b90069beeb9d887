package store

import "context"

// User is an authenticated account.
type User struct {
	ID           int32
	Username     string
	Nickname     string
	PasswordHash string
	CreatedTs    int64
}

// FindUser filters for ListUsers.
type FindUser struct {
	ID       *int32
	Username *string
}

// AccessToken is an opaque bearer token bound to a user.
type AccessToken struct {
	ID          int32
	UserID      int32
	Token       string
	Description string
	CreatedTs   int64
}

// FindAccessToken filters for ListAccessTokens.
type FindAccessToken struct {
	UserID *int32
	Token  *string
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	return s.driver.CreateUser(ctx, create)
}

func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}

// GetUser returns the first user matching the filter, or nil.
func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	list, err := s.driver.ListUsers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) CreateAccessToken(ctx context.Context, create *AccessToken) (*AccessToken, error) {
	return s.driver.CreateAccessToken(ctx, create)
}

// GetAccessToken returns the first token matching the filter, or nil.
func (s *Store) GetAccessToken(ctx context.Context, find *FindAccessToken) (*AccessToken, error) {
	list, err := s.driver.ListAccessTokens(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
