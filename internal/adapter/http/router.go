package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/ledgerfix/internal/adapter/http/handler"
	"github.com/iho/ledgerfix/internal/adapter/http/middleware"
	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	HealthHandler *handler.HealthHandler
	RepairHandler *handler.RepairHandler
	// JWTManager enables bearer authentication on /api/v1 when set.
	JWTManager  *auth.JWTManager
	RateLimiter *middleware.RateLimiter
	Logger      zerolog.Logger
	// MetricsHandler serves /metrics; promhttp.Handler() when nil.
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/repair", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		r.With(requireRole(cfg, domain.RoleViewer)).Get("/last", cfg.RepairHandler.Last)
		r.With(requireRole(cfg, domain.RoleViewer)).Get("/residual", cfg.RepairHandler.Residual)

		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Limit)
			}
			r.With(requireRole(cfg, domain.RoleOperator)).Post("/plan", cfg.RepairHandler.Plan)
			r.With(requireRole(cfg, domain.RoleAdmin)).Post("/", cfg.RepairHandler.Repair)
		})
	})

	return r
}

func requireRole(cfg RouterConfig, role domain.Role) func(http.Handler) http.Handler {
	if cfg.JWTManager == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RequireRole(role)
}
