// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer: it decides which URL patterns map to
// which handlers, what middleware runs, and how the server starts and stops.
// Storage and services are built by the caller and handed in, so tests can
// drive the exact production router over an in-memory database.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/ideaforge/internal/config"
	"github.com/sakif/ideaforge/internal/handler"
	"github.com/sakif/ideaforge/internal/metrics"
	"github.com/sakif/ideaforge/internal/middleware"
	"github.com/sakif/ideaforge/internal/service"
)

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router  *chi.Mux
	config  config.ServerConfig
	logger  *slog.Logger
	metrics *metrics.Collector
}

// New creates a Server serving svc. m may be nil, which disables /metrics.
func New(cfg config.ServerConfig, svc *service.IdeaService, m *metrics.Collector, logger *slog.Logger) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		metrics: m,
	}
	s.setupRoutes(svc)
	return s
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE ({prefix} is server.api_prefix, "/api" by default):
//
//	GET    /healthz
//	GET    /metrics
//	GET    {prefix}/ideas
//	POST   {prefix}/ideas
//	GET    {prefix}/ideas/{id}
//	GET    {prefix}/ideas/{id}/board
//	POST   {prefix}/ideas/{id}/scores
//	POST   {prefix}/ideas/{id}/improvements
//	POST   {prefix}/ideas/{id}/features
//	POST   {prefix}/ideas/{id}/techstack
//	POST   {prefix}/ideas/{id}/kanban
//	PATCH  {prefix}/ideas/{id}/kanban/{ticketId}
//	POST   {prefix}/ideas/{id}/userflow
//
// MIDDLEWARE ORDER MATTERS. Recoverer sits inside Logger and Metrics so a
// panic is still logged and counted as the 500 it becomes.
func (s *Server) setupRoutes(svc *service.IdeaService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	s.router.NotFound(handler.NotFound(s.logger))
	s.router.MethodNotAllowed(handler.MethodNotAllowed(s.logger))

	health := handler.NewHealthHandler(svc, s.logger)
	s.router.Get("/healthz", health.HandleHealth)

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	ideas := handler.NewIdeaHandler(svc, s.logger, s.config.MaxBodyBytes)
	if s.config.APIPrefix == "" {
		ideas.Routes(s.router)
	} else {
		s.router.Route(s.config.APIPrefix, ideas.Routes)
	}
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled or the process receives SIGINT
// or SIGTERM, then shuts down gracefully: new connections are refused and
// in-flight requests get server.shutdown_timeout to finish.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d%s", s.config.Port, s.config.APIPrefix)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
