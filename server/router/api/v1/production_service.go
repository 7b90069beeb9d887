package v1

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/lithammer/shortuuid/v4"

	"github.com/showrunnerhq/showrunner/store"
)

type sceneRequest struct {
	Number      string `json:"number"`
	Heading     string `json:"heading"`
	Synopsis    string `json:"synopsis"`
	PageEighths int32  `json:"pageEighths"`
}

type sceneResponse struct {
	UID         string `json:"uid"`
	Number      string `json:"number"`
	Heading     string `json:"heading"`
	Synopsis    string `json:"synopsis"`
	PageEighths int32  `json:"pageEighths"`
	Status      string `json:"status"`
	UpdatedTs   int64  `json:"updatedTs"`
}

type shootingDayRequest struct {
	DayNumber int32  `json:"dayNumber"`
	ShootDate string `json:"shootDate"`
	Notes     string `json:"notes"`
}

type shootingDayResponse struct {
	UID       string          `json:"uid"`
	DayNumber int32           `json:"dayNumber"`
	ShootDate string          `json:"shootDate"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes"`
	Scenes    []sceneResponse `json:"scenes,omitempty"`
}

func (s *APIV1Service) registerProductionRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/projects/:project")
	g.GET("/scenes", s.listScenes)
	g.POST("/scenes", s.createScene)
	g.GET("/shooting-days", s.listShootingDays)
	g.POST("/shooting-days", s.createShootingDay)
	g.GET("/schedule", s.getSchedule)
}

func (s *APIV1Service) listScenes(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	scenes, err := s.Store.ListScenes(c.Request().Context(), &store.FindScene{ProjectID: &project.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]sceneResponse, 0, len(scenes))
	for _, sc := range scenes {
		resp = append(resp, toSceneResponse(sc))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) createScene(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	var req sceneRequest
	if err := c.Bind(&req); err != nil || req.Number == "" || req.Heading == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "number and heading required")
	}
	sc, err := s.Store.CreateScene(c.Request().Context(), &store.Scene{
		UID:         shortuuid.New(),
		ProjectID:   project.ID,
		Number:      req.Number,
		Heading:     req.Heading,
		Synopsis:    req.Synopsis,
		PageEighths: req.PageEighths,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, toSceneResponse(sc))
}

func (s *APIV1Service) listShootingDays(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	days, err := s.Store.ListShootingDays(c.Request().Context(), &store.FindShootingDay{ProjectID: &project.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]shootingDayResponse, 0, len(days))
	for _, day := range days {
		resp = append(resp, toShootingDayResponse(day, nil))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *APIV1Service) createShootingDay(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	var req shootingDayRequest
	if err := c.Bind(&req); err != nil || req.DayNumber <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "positive dayNumber required")
	}
	day, err := s.Store.CreateShootingDay(c.Request().Context(), &store.ShootingDay{
		UID:       shortuuid.New(),
		ProjectID: project.ID,
		DayNumber: req.DayNumber,
		ShootDate: req.ShootDate,
		Notes:     req.Notes,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, toShootingDayResponse(day, nil))
}

func (s *APIV1Service) getSchedule(c *echo.Context) error {
	user, err := s.requireAuth(c)
	if err != nil {
		return err
	}
	project, err := s.requireProject(c, user)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	days, err := s.Store.ListShootingDays(ctx, &store.FindShootingDay{ProjectID: &project.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	scenes, err := s.Store.ListScenes(ctx, &store.FindScene{ProjectID: &project.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	sceneByID := make(map[int32]*store.Scene, len(scenes))
	for _, sc := range scenes {
		sceneByID[sc.ID] = sc
	}

	resp := make([]shootingDayResponse, 0, len(days))
	for _, day := range days {
		links, err := s.Store.ListShootingDayScenes(ctx, &store.FindShootingDayScene{ShootingDayID: &day.ID})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		assigned := make([]sceneResponse, 0, len(links))
		for _, link := range links {
			if sc, ok := sceneByID[link.SceneID]; ok {
				assigned = append(assigned, toSceneResponse(sc))
			}
		}
		resp = append(resp, toShootingDayResponse(day, assigned))
	}
	return c.JSON(http.StatusOK, resp)
}

func toSceneResponse(sc *store.Scene) sceneResponse {
	return sceneResponse{
		UID:         sc.UID,
		Number:      sc.Number,
		Heading:     sc.Heading,
		Synopsis:    sc.Synopsis,
		PageEighths: sc.PageEighths,
		Status:      sc.Status,
		UpdatedTs:   sc.UpdatedTs,
	}
}

func toShootingDayResponse(day *store.ShootingDay, scenes []sceneResponse) shootingDayResponse {
	return shootingDayResponse{
		UID:       day.UID,
		DayNumber: day.DayNumber,
		ShootDate: day.ShootDate,
		Status:    day.Status,
		Notes:     day.Notes,
		Scenes:    scenes,
	}
}
