package store

import "context"

// Project is a single production.
type Project struct {
	ID        int32
	UID       string
	CreatorID int32
	Name      string
	Status    string
	CreatedTs int64
	UpdatedTs int64
}

// FindProject filters for ListProjects.
type FindProject struct {
	ID       *int32
	UID      *string
	MemberID *int32
}

// ProjectMember grants a user access to a project.
type ProjectMember struct {
	ProjectID int32
	UserID    int32
	Role      string
	CreatedTs int64
}

func (s *Store) CreateProject(ctx context.Context, create *Project) (*Project, error) {
	return s.driver.CreateProject(ctx, create)
}

func (s *Store) ListProjects(ctx context.Context, find *FindProject) ([]*Project, error) {
	return s.driver.ListProjects(ctx, find)
}

// GetProject returns the first project matching the filter, or nil.
func (s *Store) GetProject(ctx context.Context, find *FindProject) (*Project, error) {
	list, err := s.driver.ListProjects(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpsertProjectMember(ctx context.Context, upsert *ProjectMember) (*ProjectMember, error) {
	return s.driver.UpsertProjectMember(ctx, upsert)
}

// GetProjectMember returns the membership row, or nil when the user is
// not a member of the project.
func (s *Store) GetProjectMember(ctx context.Context, projectID, userID int32) (*ProjectMember, error) {
	return s.driver.GetProjectMember(ctx, projectID, userID)
}
