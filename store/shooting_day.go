package store

import "context"

// Shooting day statuses.
const (
	ShootingDayStatusPlanned   = "PLANNED"
	ShootingDayStatusConfirmed = "CONFIRMED"
	ShootingDayStatusShot      = "SHOT"
)

// ShootingDay is one day on the shooting schedule.
type ShootingDay struct {
	ID        int32
	UID       string
	ProjectID int32
	DayNumber int32
	ShootDate string // YYYY-MM-DD
	Status    string
	Notes     string
	CreatedTs int64
	UpdatedTs int64
}

// FindShootingDay filters for ListShootingDays.
type FindShootingDay struct {
	ProjectID *int32
	UID       *string
	DayNumber *int32
	Limit     *int
}

// UpdateShootingDay carries the mutable shooting-day fields, keyed by UID.
type UpdateShootingDay struct {
	UID       string
	DayNumber *int32
	ShootDate *string
	Status    *string
	Notes     *string
}

// ShootingDayScene links a scene onto a shooting day.
type ShootingDayScene struct {
	ID            int32
	ShootingDayID int32
	SceneID       int32
	SortOrder     int32
}

// FindShootingDayScene filters for ListShootingDayScenes.
type FindShootingDayScene struct {
	ShootingDayID *int32
	SceneID       *int32
}

func (s *Store) CreateShootingDay(ctx context.Context, create *ShootingDay) (*ShootingDay, error) {
	return s.driver.CreateShootingDay(ctx, create)
}

func (s *Store) ListShootingDays(ctx context.Context, find *FindShootingDay) ([]*ShootingDay, error) {
	return s.driver.ListShootingDays(ctx, find)
}

// GetShootingDay returns the first shooting day matching the filter, or nil.
func (s *Store) GetShootingDay(ctx context.Context, find *FindShootingDay) (*ShootingDay, error) {
	list, err := s.driver.ListShootingDays(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateShootingDay(ctx context.Context, update *UpdateShootingDay) (*ShootingDay, error) {
	return s.driver.UpdateShootingDay(ctx, update)
}

func (s *Store) DeleteShootingDay(ctx context.Context, uid string) error {
	return s.driver.DeleteShootingDay(ctx, uid)
}

func (s *Store) AssignSceneToDay(ctx context.Context, create *ShootingDayScene) (*ShootingDayScene, error) {
	return s.driver.AssignSceneToDay(ctx, create)
}

func (s *Store) UnassignSceneFromDay(ctx context.Context, shootingDayID, sceneID int32) error {
	return s.driver.UnassignSceneFromDay(ctx, shootingDayID, sceneID)
}

func (s *Store) ListShootingDayScenes(ctx context.Context, find *FindShootingDayScene) ([]*ShootingDayScene, error) {
	return s.driver.ListShootingDayScenes(ctx, find)
}
