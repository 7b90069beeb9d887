// Package v1 is the HTTP API surface.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/showrunnerhq/showrunner/server/agent"
	"github.com/showrunnerhq/showrunner/server/auth"
	"github.com/showrunnerhq/showrunner/server/profile"
	"github.com/showrunnerhq/showrunner/store"
)

// APIV1Service carries the dependencies shared by all v1 handlers.
type APIV1Service struct {
	Store   *store.Store
	Profile *profile.Profile
	Agent   *agent.Agent
}

func NewAPIV1Service(s *store.Store, prof *profile.Profile, ag *agent.Agent) *APIV1Service {
	return &APIV1Service{
		Store:   s,
		Profile: prof,
		Agent:   ag,
	}
}

// Register mounts all v1 routes.
func (s *APIV1Service) Register(e *echo.Echo) {
	s.registerAuthRoutes(e)
	s.registerProjectRoutes(e)
	s.registerProductionRoutes(e)
	s.registerAssistantRoutes(e)
}

func (s *APIV1Service) requireAuth(c *echo.Context) (*store.User, error) {
	authHeader := c.Request().Header.Get("Authorization")
	user, err := auth.NewAuthenticator(s.Store).AuthenticateToUser(c.Request().Context(), authHeader)
	if err != nil || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return user, nil
}

// requireProject resolves the :project path param and checks membership.
func (s *APIV1Service) requireProject(c *echo.Context, user *store.User) (*store.Project, error) {
	uid := c.Param("project")
	project, err := s.Store.GetProject(c.Request().Context(), &store.FindProject{UID: &uid})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if project == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	member, err := s.Store.GetProjectMember(c.Request().Context(), project.ID, user.ID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if member == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not a member of this project")
	}
	return project, nil
}
