// Package server exposes the support service over HTTP: message and
// classification endpoints, conversation history, crisis resources, and
// health probes, plus a Prometheus metrics listener.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quietharbor/quietharbor/internal/agent"
	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/config"
	"github.com/quietharbor/quietharbor/internal/metrics"
	"github.com/quietharbor/quietharbor/internal/store"
)

// Server wraps the Fiber app and its dependencies.
type Server struct {
	App     *fiber.App
	cfg     *config.Config
	store   *store.Store
	agent   *agent.Agent
	audit   *audit.Log
	metrics *http.Server
}

// New creates a server with middleware and routes configured. The audit
// log may be nil, in which case crisis events are not persisted to the
// safety log.
func New(cfg *config.Config, st *store.Store, ag *agent.Agent, auditLog *audit.Log) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return jsonError(c, code, message)
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		cfg:   cfg,
		store: st,
		agent: ag,
		audit: auditLog,
	}
	s.registerRoutes()
	return s
}

// Start serves HTTP on the configured address and, when a metrics address
// is set, a Prometheus endpoint on a second listener. Blocks until the
// listener fails or Shutdown is called.
func (s *Server) Start() error {
	if s.cfg.MetricsAddr != "" {
		prometheus.MustRegister(metrics.NewCrisisCollector(s.store))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		s.metrics = &http.Server{
			Addr:              s.cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := s.metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
	}

	return s.App.Listen(s.cfg.ListenAddr)
}

// Shutdown gracefully stops both listeners.
func (s *Server) Shutdown() error {
	if s.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metrics.Shutdown(ctx); err != nil {
			slog.Error("metrics shutdown failed", "error", err)
		}
	}
	return s.App.Shutdown()
}
