package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/config"
	"github.com/dafibh/fortuna/tracker-backend/internal/handler"
	"github.com/dafibh/fortuna/tracker-backend/internal/middleware"
	"github.com/dafibh/fortuna/tracker-backend/internal/repository/postgres"
	"github.com/dafibh/fortuna/tracker-backend/internal/service"
	"github.com/dafibh/fortuna/tracker-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server exited")
}

// run connects the database, serves until SIGINT/SIGTERM and shuts down
func run(cfg *config.Config) error {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	log.Info().Msg("Connected to database")

	if err := postgres.RunMigrations(pool); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	hub := websocket.NewHub()
	expenseRepo := postgres.NewExpenseRepository(pool)
	monthlyBudgetRepo := postgres.NewMonthlyBudgetRepository(pool)

	expenseService := service.NewExpenseService(expenseRepo)
	expenseService.SetEventPublisher(hub)
	monthlyBudgetService := service.NewMonthlyBudgetService(monthlyBudgetRepo)
	monthlyBudgetService.SetEventPublisher(hub)
	dashboardService := service.NewDashboardService(expenseRepo, monthlyBudgetRepo, cfg.DatePolicy)

	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		return fmt.Errorf("creating auth middleware: %w", err)
	}
	tokenValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		return fmt.Errorf("creating websocket token validator: %w", err)
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	log.Info().
		Str("date_policy", cfg.DatePolicy.String()).
		Str("default_window", cfg.DefaultWindow.String()).
		Int("rate_limit_per_minute", cfg.RateLimitPerMinute).
		Msg("Dashboard engine configured")

	e := newServer(cfg, serverDeps{
		hub:            hub,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		sessions:       handler.NewSessionHandler(),
		expenses:       handler.NewExpenseHandler(expenseService),
		monthlyBudgets: handler.NewMonthlyBudgetHandler(monthlyBudgetService),
		dashboard:      handler.NewDashboardHandler(dashboardService, cfg.DefaultWindow),
		websocket:      handler.NewWebSocketHandler(hub, tokenValidator, cfg.CORSOrigins),
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
