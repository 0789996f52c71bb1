package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/dailyreel/internal/api"
	"github.com/timmy/dailyreel/internal/app"
	"github.com/timmy/dailyreel/internal/config"
	"github.com/timmy/dailyreel/internal/logger"
)

func main() {
	appLogger := logger.NewFromEnv(nil)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	ctx := appLogger.WithContext(context.Background())
	application, err := app.Build(ctx, cfg, app.Options{Guard: true})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	if err := application.CheckSource(ctx); err != nil {
		appLogger.WithError(err).Warn("Storage bucket is not reachable")
	}

	if issues := cfg.Validate(); len(issues) > 0 {
		appLogger.WithField("issues", issues).Warn("Configuration incomplete, runs will be skipped")
	}
	if cfg.LLM.Enabled() {
		appLogger.WithField("model", cfg.LLM.Model).Info("Model metadata enabled")
	}

	deps := api.Dependencies{
		Recorder: application.Recorder,
		Status:   application.Status,
		Metrics:  application.MetricsHandler(),
		Logger:   appLogger,
	}
	if application.History != nil {
		deps.History = application.History
	}
	router := api.SetupRouter(&cfg.Server, cfg.Metrics.Path, deps)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port":   cfg.Server.Port,
			"mode":   cfg.Server.Mode,
			"source": cfg.Source.Type,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
