package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fintrack/budgetd/internal/adapter/http/handler"
	"github.com/fintrack/budgetd/internal/adapter/http/middleware"
	"github.com/fintrack/budgetd/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BudgetHandler    *handler.BudgetHandler
	RecurringHandler *handler.RecurringHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", cfg.BudgetHandler.Create)
			r.Get("/", cfg.BudgetHandler.List)
			r.Get("/progress", cfg.BudgetHandler.Progress)
			r.Get("/{id}", cfg.BudgetHandler.Get)
			r.Patch("/{id}", cfg.BudgetHandler.Update)
			r.Delete("/{id}", cfg.BudgetHandler.Delete)
			r.Get("/{id}/changelog", cfg.BudgetHandler.ChangeLog)
		})

		// Recurring bills
		r.Route("/bills", func(r chi.Router) {
			r.Post("/generate", cfg.RecurringHandler.Run)
			r.Post("/{id}/pay", cfg.RecurringHandler.PayBill)
		})
	})

	return r
}
