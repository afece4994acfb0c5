package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expensetracker/internal/config"
	"expensetracker/internal/currency"
	"expensetracker/internal/database"
	"expensetracker/internal/events"
	"expensetracker/internal/logger"
	"expensetracker/internal/router"
	"expensetracker/internal/services"
	"expensetracker/internal/session"
	"expensetracker/internal/validator"
)

// @title           Expense Tracker API
// @version         1.0
// @description     Expense tracking with multi-currency totals, category breakdowns and monthly trends.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 30 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("Failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Change events
	var publisher events.Publisher = events.Nop{}
	if appConfig.NATSURL != "" {
		nc, err := events.Connect(appConfig.NATSURL, logger.Named("events"))
		if err != nil {
			return err
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				log.Warnw("Failed to drain NATS connection", "error", err)
			}
		}()
		publisher = events.NewNATSPublisher(nc, appConfig.NATSSubjectPrefix)
		log.Infow("Publishing change events", "url", appConfig.NATSURL, "prefix", appConfig.NATSSubjectPrefix)
	}

	// Sessions over the database-backed data service
	sessions := session.NewManager(services.NewDataService(dbManager.DB()),
		session.WithPublisher(publisher),
		session.WithDefaultCurrency(appConfig.DisplayCurrency),
	)

	validator.Register()
	engine := router.New(router.Deps{
		Sessions:      sessions,
		Converter:     currency.Default(),
		JWTSecret:     appConfig.JWTSecret,
		WebhookAPIKey: appConfig.WebhookAPIKey,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting expense tracker API on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
