package store

import "context"

// CastMember is an actor attached to the production.
type CastMember struct {
	ID         int32
	UID        string
	ProjectID  int32
	Name       string
	Character  string
	CastNumber int32
	Status     string
	CreatedTs  int64
	UpdatedTs  int64
}

// FindCastMember filters for ListCastMembers.
type FindCastMember struct {
	ProjectID *int32
	UID       *string
	Limit     *int
}

// UpdateCastMember carries the mutable cast fields, keyed by UID.
type UpdateCastMember struct {
	UID        string
	Name       *string
	Character  *string
	CastNumber *int32
	Status     *string
}

func (s *Store) CreateCastMember(ctx context.Context, create *CastMember) (*CastMember, error) {
	return s.driver.CreateCastMember(ctx, create)
}

func (s *Store) ListCastMembers(ctx context.Context, find *FindCastMember) ([]*CastMember, error) {
	return s.driver.ListCastMembers(ctx, find)
}

// GetCastMember returns the first cast member matching the filter, or nil.
func (s *Store) GetCastMember(ctx context.Context, find *FindCastMember) (*CastMember, error) {
	list, err := s.driver.ListCastMembers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateCastMember(ctx context.Context, update *UpdateCastMember) (*CastMember, error) {
	return s.driver.UpdateCastMember(ctx, update)
}

func (s *Store) DeleteCastMember(ctx context.Context, uid string) error {
	return s.driver.DeleteCastMember(ctx, uid)
}
