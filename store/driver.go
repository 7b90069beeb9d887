package store

import "context"

// Driver is the contract every database backend implements.
type Driver interface {
	Migrate(ctx context.Context) error
	Close() error

	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)
	CreateAccessToken(ctx context.Context, create *AccessToken) (*AccessToken, error)
	ListAccessTokens(ctx context.Context, find *FindAccessToken) ([]*AccessToken, error)

	CreateProject(ctx context.Context, create *Project) (*Project, error)
	ListProjects(ctx context.Context, find *FindProject) ([]*Project, error)
	UpsertProjectMember(ctx context.Context, upsert *ProjectMember) (*ProjectMember, error)
	GetProjectMember(ctx context.Context, projectID, userID int32) (*ProjectMember, error)

	CreateScene(ctx context.Context, create *Scene) (*Scene, error)
	ListScenes(ctx context.Context, find *FindScene) ([]*Scene, error)
	UpdateScene(ctx context.Context, update *UpdateScene) (*Scene, error)
	DeleteScene(ctx context.Context, uid string) error

	CreateCastMember(ctx context.Context, create *CastMember) (*CastMember, error)
	ListCastMembers(ctx context.Context, find *FindCastMember) ([]*CastMember, error)
	UpdateCastMember(ctx context.Context, update *UpdateCastMember) (*CastMember, error)
	DeleteCastMember(ctx context.Context, uid string) error

	CreateCrewMember(ctx context.Context, create *CrewMember) (*CrewMember, error)
	ListCrewMembers(ctx context.Context, find *FindCrewMember) ([]*CrewMember, error)
	UpdateCrewMember(ctx context.Context, update *UpdateCrewMember) (*CrewMember, error)
	DeleteCrewMember(ctx context.Context, uid string) error

	CreateLocation(ctx context.Context, create *Location) (*Location, error)
	ListLocations(ctx context.Context, find *FindLocation) ([]*Location, error)
	UpdateLocation(ctx context.Context, update *UpdateLocation) (*Location, error)
	DeleteLocation(ctx context.Context, uid string) error

	CreateElement(ctx context.Context, create *Element) (*Element, error)
	ListElements(ctx context.Context, find *FindElement) ([]*Element, error)
	UpdateElement(ctx context.Context, update *UpdateElement) (*Element, error)
	DeleteElement(ctx context.Context, uid string) error

	CreateShootingDay(ctx context.Context, create *ShootingDay) (*ShootingDay, error)
	ListShootingDays(ctx context.Context, find *FindShootingDay) ([]*ShootingDay, error)
	UpdateShootingDay(ctx context.Context, update *UpdateShootingDay) (*ShootingDay, error)
	DeleteShootingDay(ctx context.Context, uid string) error

	AssignSceneToDay(ctx context.Context, create *ShootingDayScene) (*ShootingDayScene, error)
	UnassignSceneFromDay(ctx context.Context, shootingDayID, sceneID int32) error
	ListShootingDayScenes(ctx context.Context, find *FindShootingDayScene) ([]*ShootingDayScene, error)

	CreateAgentMessage(ctx context.Context, create *CreateAgentMessage) (*AgentMessage, error)
	ListAgentMessages(ctx context.Context, find *FindAgentMessage) ([]*AgentMessage, error)
}
