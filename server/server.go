// Package server wires the HTTP server together.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/showrunnerhq/showrunner/plugin/openrouter"
	"github.com/showrunnerhq/showrunner/plugin/vectorstore"
	"github.com/showrunnerhq/showrunner/server/agent"
	apiv1 "github.com/showrunnerhq/showrunner/server/router/api/v1"
	"github.com/showrunnerhq/showrunner/server/profile"
	"github.com/showrunnerhq/showrunner/store"
)

// Server is the production-office HTTP server.
type Server struct {
	httpServer *http.Server
	profile    *profile.Profile
	store      *store.Store
}

func NewServer(prof *profile.Profile, s *store.Store, vs *vectorstore.Store) *Server {
	e := echo.New()
	e.Use(middleware.Recover())

	var ag *agent.Agent
	if prof.OpenRouterAPIKey != "" {
		llm := openrouter.NewClient(prof.OpenRouterAPIKey, prof.Model)
		ag = agent.New(s, vs, llm)
	} else {
		slog.Warn("OPENROUTER_API_KEY not set, assistant disabled")
	}

	apiv1.NewAPIV1Service(s, prof, ag).Register(e)

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", prof.Addr, prof.Port),
			Handler: e,
		},
		profile: prof,
		store:   s,
	}
}

// Start blocks serving HTTP until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("server starting", "address", s.httpServer.Addr, "mode", s.profile.Mode, "driver", s.profile.Driver)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown stops the HTTP server and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down http server", "err", err)
	}
	if err := s.store.Close(); err != nil {
		slog.Error("failed to close store", "err", err)
	}
	slog.Info("server stopped")
	return nil
}
