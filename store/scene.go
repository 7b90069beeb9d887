package store

import "context"

// Scene statuses.
const (
	SceneStatusDraft    = "DRAFT"
	SceneStatusApproved = "APPROVED"
	SceneStatusLocked   = "LOCKED"
)

// Scene is a single script scene.
type Scene struct {
	ID          int32
	UID         string
	ProjectID   int32
	Number      string // e.g. "12", "14A"
	Heading     string // e.g. "INT. KITCHEN - DAY"
	Synopsis    string
	PageEighths int32
	Status      string
	SortOrder   int32
	CreatedTs   int64
	UpdatedTs   int64
}

// FindScene filters for ListScenes.
type FindScene struct {
	ProjectID *int32
	UID       *string
	Number    *string
	Status    *string
	Limit     *int
}

// UpdateScene carries the mutable scene fields, keyed by UID.
type UpdateScene struct {
	UID         string
	Number      *string
	Heading     *string
	Synopsis    *string
	PageEighths *int32
	Status      *string
	SortOrder   *int32
}

func (s *Store) CreateScene(ctx context.Context, create *Scene) (*Scene, error) {
	return s.driver.CreateScene(ctx, create)
}

func (s *Store) ListScenes(ctx context.Context, find *FindScene) ([]*Scene, error) {
	return s.driver.ListScenes(ctx, find)
}

// GetScene returns the first scene matching the filter, or nil.
func (s *Store) GetScene(ctx context.Context, find *FindScene) (*Scene, error) {
	list, err := s.driver.ListScenes(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateScene(ctx context.Context, update *UpdateScene) (*Scene, error) {
	return s.driver.UpdateScene(ctx, update)
}

func (s *Store) DeleteScene(ctx context.Context, uid string) error {
	return s.driver.DeleteScene(ctx, uid)
}
