package store

import "context"

// Element is a breakdown item (prop, wardrobe, vehicle, ...), optionally
// tied to a scene.
type Element struct {
	ID        int32
	UID       string
	ProjectID int32
	SceneUID  string // empty when not scene-bound
	Category  string
	Name      string
	Quantity  int32
	CreatedTs int64
	UpdatedTs int64
}

// FindElement filters for ListElements.
type FindElement struct {
	ProjectID *int32
	UID       *string
	SceneUID  *string
	Category  *string
	Limit     *int
}

// UpdateElement carries the mutable element fields, keyed by UID.
type UpdateElement struct {
	UID      string
	SceneUID *string
	Category *string
	Name     *string
	Quantity *int32
}

func (s *Store) CreateElement(ctx context.Context, create *Element) (*Element, error) {
	return s.driver.CreateElement(ctx, create)
}

func (s *Store) ListElements(ctx context.Context, find *FindElement) ([]*Element, error) {
	return s.driver.ListElements(ctx, find)
}

// GetElement returns the first element matching the filter, or nil.
func (s *Store) GetElement(ctx context.Context, find *FindElement) (*Element, error) {
	list, err := s.driver.ListElements(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateElement(ctx context.Context, update *UpdateElement) (*Element, error) {
	return s.driver.UpdateElement(ctx, update)
}

func (s *Store) DeleteElement(ctx context.Context, uid string) error {
	return s.driver.DeleteElement(ctx, uid)
}
