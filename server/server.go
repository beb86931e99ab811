// Package server wires the HTTP surface over the AI dispatch service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/lumenhealth/lumen/internal/profile"
	"github.com/lumenhealth/lumen/plugin/ai/orchestrator"
	"github.com/lumenhealth/lumen/server/middleware"
	aihandler "github.com/lumenhealth/lumen/server/router/api/v1/ai"
	"github.com/lumenhealth/lumen/store"
)

const (
	// chatRatePerSecond and chatBurst bound per-user chat traffic.
	chatRatePerSecond = 10
	chatBurst         = 20
)

// Server is the HTTP server.
type Server struct {
	e       *echo.Echo
	profile *profile.Profile
	store   *store.Store
	logger  *slog.Logger
}

// NewServer creates the HTTP server and mounts all routes.
func NewServer(profile *profile.Profile, store *store.Store, aiService *orchestrator.Service, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		e:       e,
		profile: profile,
		store:   store,
		logger:  logger,
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	limiter := middleware.NewRateLimiter(chatRatePerSecond, chatBurst)
	apiV1 := e.Group("/api/v1")
	aihandler.NewHandler(aiService, logger).Register(apiV1.Group("/ai"), limiter)

	return s
}

// Start runs the server until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.profile.Addr, s.profile.Port)
	s.logger.Info("server started", slog.String("address", address), slog.String("mode", s.profile.Mode))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.e.Start(address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.e.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shut down server", slog.String("error", err.Error()))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("failed to close store", slog.String("error", err.Error()))
	}
	s.logger.Info("server stopped")
	return nil
}
