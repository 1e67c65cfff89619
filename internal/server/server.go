// Package server wires the gin HTTP engine, OpenTelemetry tracing, and
// Prometheus metrics into a runnable Service, following the teacher
// orchestrator's service/Run/Router shape.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/naveeak/impact-analyser/internal/config"
	"github.com/naveeak/impact-analyser/internal/httpapi"
	"github.com/naveeak/impact-analyser/internal/metrics"
	"github.com/naveeak/impact-analyser/internal/orchestrator"
	"github.com/naveeak/impact-analyser/internal/retrieval"
	"github.com/naveeak/impact-analyser/internal/store"
	"github.com/naveeak/impact-analyser/internal/tracing"
)

// Service is the contract for the HTTP front end: start it, and fetch the
// underlying router for integration testing.
type Service interface {
	Run() error
	Router() *gin.Engine
}

type service struct {
	cfg      config.Config
	router   *gin.Engine
	store    *store.Store
	shutdown tracing.Shutdown
}

// New builds a Service from cfg. Graph persistence is optional: when
// cfg.StorePath is empty the orchestrator runs without a store and treats
// any stored-graph lookup as absent rather than failing the request.
func New(cfg config.Config) (Service, error) {
	s := &service{cfg: cfg}

	shutdown, err := tracing.Init(context.Background(), tracing.Config{
		ServiceName: "impact-analyser",
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("server: initializing tracing: %w", err)
	}
	s.shutdown = shutdown

	if cfg.StorePath != "" {
		st, err := store.Open(store.DefaultConfig(cfg.StorePath))
		if err != nil {
			return nil, fmt.Errorf("server: opening graph store: %w", err)
		}
		s.store = st
	}

	if cfg.EnableMetrics && metrics.Default == nil {
		metrics.Init()
	}

	orch := orchestrator.New(s.store, retrieval.NewInMemory(nil))

	gin.SetMode(modeOrDefault(cfg.GinMode))
	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("impact-analyser"))
	if timeout := cfg.AnalysisTimeout; timeout > 0 {
		s.router.Use(func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}

	if cfg.EnableMetrics {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	srv := httpapi.NewServer(orch)
	srv.Register(s.router)

	return s, nil
}

func modeOrDefault(mode string) string {
	if mode == "" {
		return gin.DebugMode
	}
	return mode
}

func (s *service) Run() error {
	defer s.cleanup()
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	slog.Info("starting impact-analyser HTTP server", "addr", addr)
	return s.router.Run(addr)
}

func (s *service) Router() *gin.Engine {
	return s.router
}

func (s *service) cleanup() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			slog.Warn("error closing graph store", "error", err)
		}
	}
	if s.shutdown != nil {
		if err := s.shutdown(context.Background()); err != nil {
			slog.Warn("error shutting down tracer provider", "error", err)
		}
	}
}
