package store

import "context"

// Location is a shooting location.
type Location struct {
	ID        int32
	UID       string
	ProjectID int32
	Name      string
	Address   string
	Notes     string
	CreatedTs int64
	UpdatedTs int64
}

// FindLocation filters for ListLocations.
type FindLocation struct {
	ProjectID *int32
	UID       *string
	Limit     *int
}

// UpdateLocation carries the mutable location fields, keyed by UID.
type UpdateLocation struct {
	UID     string
	Name    *string
	Address *string
	Notes   *string
}

func (s *Store) CreateLocation(ctx context.Context, create *Location) (*Location, error) {
	return s.driver.CreateLocation(ctx, create)
}

func (s *Store) ListLocations(ctx context.Context, find *FindLocation) ([]*Location, error) {
	return s.driver.ListLocations(ctx, find)
}

// GetLocation returns the first location matching the filter, or nil.
func (s *Store) GetLocation(ctx context.Context, find *FindLocation) (*Location, error) {
	list, err := s.driver.ListLocations(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateLocation(ctx context.Context, update *UpdateLocation) (*Location, error) {
	return s.driver.UpdateLocation(ctx, update)
}

func (s *Store) DeleteLocation(ctx context.Context, uid string) error {
	return s.driver.DeleteLocation(ctx, uid)
}
