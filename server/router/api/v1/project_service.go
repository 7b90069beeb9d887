package v1

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/store"
)

type projectRequest struct {
	Name string `json:"name"`
}

type memberRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type projectResponse struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
}

func (s *APIV1Service) registerProjectRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/projects")
	g.GET("", s.listProjects)
	g.POST("", s.createProject)
	g.POST("/:project/members", s.addProjectMember)
}

func (s *APIV1Service) listProjects(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	projects, err := s.Store.ListProjects(c.Request().Context(), &store.FindProject{MemberID: &user.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) createProject(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	var req projectRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name required")
	}
	ctx := c.Request().Context()

	project, err := s.Store.CreateProject(ctx, &store.Project{
		UID:       shortuuid.New(),
		CreatorID: user.ID,
		Name:      req.Name,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if _, err := s.Store.UpsertProjectMember(ctx, &store.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      "OWNER",
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (s *APIV1Service) addProjectMember(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	var req memberRequest
	if err := c.Bind(&req); err != nil || req.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username required")
	}
	ctx := c.Request().Context()

	member, err := s.Store.GetUser(ctx, &store.FindUser{Username: &req.Username})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if member == nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	if _, err := s.Store.UpsertProjectMember(ctx, &store.ProjectMember{
		ProjectID: project.ID,
		UserID:    member.ID,
		Role:      req.Role,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func toProjectResponse(p *store.Project) projectResponse {
	return projectResponse{
		UID:       p.UID,
		Name:      p.Name,
		Status:    p.Status,
		CreatedTs: p.CreatedTs,
		UpdatedTs: p.UpdatedTs,
	}
}
