package store

import "context"

// CrewMember is a crew hire (DP, gaffer, script supervisor, ...).
type CrewMember struct {
	ID         int32
	UID        string
	ProjectID  int32
	Name       string
	Role       string
	Department string
	Email      string
	CreatedTs  int64
	UpdatedTs  int64
}

// FindCrewMember filters for ListCrewMembers.
type FindCrewMember struct {
	ProjectID  *int32
	UID        *string
	Department *string
	Limit      *int
}

// UpdateCrewMember carries the mutable crew fields, keyed by UID.
type UpdateCrewMember struct {
	UID        string
	Name       *string
	Role       *string
	Department *string
	Email      *string
}

func (s *Store) CreateCrewMember(ctx context.Context, create *CrewMember) (*CrewMember, error) {
	return s.driver.CreateCrewMember(ctx, create)
}

func (s *Store) ListCrewMembers(ctx context.Context, find *FindCrewMember) ([]*CrewMember, error) {
	return s.driver.ListCrewMembers(ctx, find)
}

// GetCrewMember returns the first crew member matching the filter, or nil.
func (s *Store) GetCrewMember(ctx context.Context, find *FindCrewMember) (*CrewMember, error) {
	list, err := s.driver.ListCrewMembers(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateCrewMember(ctx context.Context, update *UpdateCrewMember) (*CrewMember, error) {
	return s.driver.UpdateCrewMember(ctx, update)
}

func (s *Store) DeleteCrewMember(ctx context.Context, uid string) error {
	return s.driver.DeleteCrewMember(ctx, uid)
}
