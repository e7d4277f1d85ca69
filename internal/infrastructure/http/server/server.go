// Package server provides the HTTP server for the planning and grocery
// APIs, including the SSE progress stream.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/infrastructure/config"
	"github.com/kitchensage/v2/internal/infrastructure/http/handlers"
	"github.com/kitchensage/v2/internal/infrastructure/http/middleware"
	"github.com/kitchensage/v2/internal/infrastructure/monitoring"
	"github.com/kitchensage/v2/internal/ports/inbound"
)

// Server represents the HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	router  *chi.Mux
	server  *http.Server
	planner inbound.PlannerService
	grocery inbound.GroceryService
	metrics *monitoring.Metrics
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	planner inbound.PlannerService,
	grocery inbound.GroceryService,
	metrics *monitoring.Metrics,
) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		planner: planner,
		grocery: grocery,
		metrics: metrics,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: s.router,
		// WriteTimeout stays zero: SSE streams hold the response open for
		// the whole planning run.
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	m := middleware.New(s.config, s.logger, s.metrics)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(m.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(m.Security)
	r.Use(m.CORS)
	r.Use(m.RateLimit)

	health := handlers.NewHealthHandlers(s.config.App.Version, s.logger)
	r.Get(s.config.Monitoring.HealthCheckPath, health.HealthCheck)

	if s.config.Monitoring.EnableMetrics && s.metrics != nil {
		r.Handle(s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	plannerHandlers := handlers.NewPlannerHandlers(s.planner, s.logger)
	groceryHandlers := handlers.NewGroceryHandlers(s.grocery, s.logger)

	r.Route("/meal-plans", func(r chi.Router) {
		r.Post("/", plannerHandlers.ComposePlan)
		r.Post("/stream", plannerHandlers.StreamPlan)
		r.Get("/", plannerHandlers.ListPlans)
		r.Get("/{id}", plannerHandlers.GetPlan)
		r.Delete("/{id}", plannerHandlers.DeletePlan)
	})

	r.Route("/grocery-lists", func(r chi.Router) {
		r.Post("/from-plan", groceryHandlers.BuildList)
		r.Get("/default", groceryHandlers.GetDefaultList)
		r.Get("/{id}", groceryHandlers.GetList)
		r.Patch("/{id}/items/{itemID}", groceryHandlers.MarkItemPurchased)
		r.Delete("/{id}/items/{itemID}", groceryHandlers.RemoveItem)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
