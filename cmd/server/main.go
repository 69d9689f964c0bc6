package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/premiumcalc/backend/internal/config"
	"github.com/premiumcalc/backend/internal/delivery/http"
	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/internal/repository/postgres"
	"github.com/premiumcalc/backend/internal/service"
)

func main() {
	// Configuration
	cfg, envFile := config.Load()
	log := cfg.NewLogger()
	if !envFile {
		log.Info("No .env file found, using system environment")
	}

	// Model is loaded once and read-only afterwards
	model, err := newPredictor(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("model unavailable")
	}
	log.WithField("model", model.Name()).Info("model ready")

	// Prediction audit log
	var pool *pgxpool.Pool
	var logRepo service.PredictionLogRepository = postgres.NewMockRepository()
	if cfg.DatabaseURL != "" {
		pool, logRepo = connectDatabase(cfg.DatabaseURL, log)
		if pool != nil {
			defer pool.Close()
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registry)

	quoteSvc := service.NewQuoteService(model, logRepo, metrics, log)
	handler := http.NewHandler(quoteSvc, log)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:               "Premium Predictor v1.0",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          http.ErrorHandler,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, handler, registry)

	// Graceful shutdown
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("Server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.WithError(err).Warn("Server forced to shutdown")
	}
	quoteSvc.WaitBackground()
	log.Info("Server exited gracefully")
}

func newPredictor(cfg *config.Config, log *logrus.Logger) (domain.Predictor, error) {
	if cfg.ModelBackend == config.BackendRemote {
		return service.NewMLBridge(cfg.MLServiceURL, cfg.MLTimeout, log), nil
	}
	model, err := service.LoadLinearModel(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// connectDatabase falls back to the mock log when PostgreSQL is unreachable
func connectDatabase(url string, log *logrus.Logger) (*pgxpool.Pool, service.PredictionLogRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		log.WithError(err).Warn("Could not connect to database, prediction log disabled")
		if pool != nil {
			pool.Close()
		}
		return nil, postgres.NewMockRepository()
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		log.WithError(err).Warn("Could not prepare prediction_logs table, prediction log disabled")
		pool.Close()
		return nil, postgres.NewMockRepository()
	}

	log.Info("Connected to PostgreSQL")
	return pool, repo
}
