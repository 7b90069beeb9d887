package v1

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/showrunnerhq/showrunner/server/auth"
	"github.com/showrunnerhq/showrunner/store"
)

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	UserID   int32  `json:"userId"`
	Username string `json:"username"`
}

func (s *APIV1Service) registerAuthRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/auth")
	g.POST("/signup", s.signup)
	g.POST("/login", s.login)
}

func (s *APIV1Service) signup(c *echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}
	ctx := c.Request().Context()

	existing, err := s.Store.GetUser(ctx, &store.FindUser{Username: &req.Username})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "username already taken")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	user, err := s.Store.CreateUser(ctx, &store.User{
		Username:     req.Username,
		Nickname:     req.Nickname,
		PasswordHash: hash,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return s.issueToken(c, user, http.StatusCreated)
}

func (s *APIV1Service) login(c *echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password required")
	}
	ctx := c.Request().Context()

	user, err := s.Store.GetUser(ctx, &store.FindUser{Username: &req.Username})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	return s.issueToken(c, user, http.StatusOK)
}

func (s *APIV1Service) issueToken(c *echo.Context, user *store.User, status int) error {
	token, err := s.Store.CreateAccessToken(c.Request().Context(), &store.AccessToken{
		UserID:      user.ID,
		Token:       uuid.NewString(),
		Description: "api login",
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(status, tokenResponse{
		Token:    token.Token,
		UserID:   user.ID,
		Username: user.Username,
	})
}
