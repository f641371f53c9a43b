package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fintrack/budgetd/internal/adapter/http"
	"github.com/fintrack/budgetd/internal/adapter/http/handler"
	"github.com/fintrack/budgetd/internal/adapter/http/middleware"
	postgresRepo "github.com/fintrack/budgetd/internal/adapter/repository/postgres"
	redisRepo "github.com/fintrack/budgetd/internal/adapter/repository/redis"
	"github.com/fintrack/budgetd/internal/infrastructure/config"
	"github.com/fintrack/budgetd/internal/infrastructure/logger"
	"github.com/fintrack/budgetd/internal/infrastructure/metrics"
	"github.com/fintrack/budgetd/internal/infrastructure/postgres"
	"github.com/fintrack/budgetd/internal/infrastructure/redis"
	"github.com/fintrack/budgetd/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	changeLogRepo := postgresRepo.NewChangeLogRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	templateLock := redisRepo.NewTemplateLock(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	appMetrics := metrics.New()
	budgetUC := usecase.NewBudgetUseCase(budgetRepo, txRepo, changeLogRepo, idGen, appMetrics, appLogger)
	recurringUC := usecase.NewRecurringUseCase(txRepo, idGen, templateLock, cfg.GenerationLockTTL, appMetrics, appLogger)

	// Initialize handlers
	budgetHandler := handler.NewBudgetHandler(budgetUC)
	recurringHandler := handler.NewRecurringHandler(recurringUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Rate limiter with periodic cleanup of per-IP state
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(cfg.RateLimitCleanup)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BudgetHandler:    budgetHandler,
		RecurringHandler: recurringHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
