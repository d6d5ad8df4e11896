package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/api"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/audit"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/config"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/face"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/preview"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/provider"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/service"
	"github.com/saturnino-fabrica-de-software/hairmatch/internal/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting HairMatch API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("provider", cfg.ProviderType),
	)

	engine, err := face.NewEngine(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	landmarkProvider, err := face.NewLandmarkProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create landmark provider: %w", err)
	}

	carousel := preview.NewCarousel(cfg.HeadModelPath, cfg.HairModelPaths)
	hub := ws.NewHub(logger)

	analysisService := service.NewAnalysisService(engine, landmarkProvider, carousel, hub, logger).
		WithMaxAttempts(cfg.MaxScanAttempts).
		WithAuditLogger(audit.NewSlogLogger(logger))

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		AnalysisService: analysisService,
		Hub:             hub,
		ReadinessChecks: readinessChecks(carousel, landmarkProvider),
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}

func readinessChecks(carousel *preview.Carousel, landmarkProvider provider.LandmarkProvider) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"head_model": func() error {
			_, err := carousel.HeadModel()
			return err
		},
	}

	if pinger, ok := landmarkProvider.(provider.Pinger); ok {
		checks["provider"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pinger.Ping(ctx)
		}
	}

	return checks
}
