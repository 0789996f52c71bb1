package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/dailyreel/internal/app"
	"github.com/timmy/dailyreel/internal/config"
	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/service"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		Output:      os.Stderr,
		ServiceName: "dailyreel-upload",
	})
	logger.SetDefaultLogger(appLogger)

	configPath := flag.String("config", "", "Path to config file")
	manual := flag.Bool("manual", true, "Record the run as manually triggered")
	statusOnly := flag.Bool("status", false, "Print status instead of uploading")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	ctx, cancel := context.WithCancel(appLogger.WithContext(context.Background()))
	defer cancel()

	application, err := app.Build(ctx, cfg, app.Options{})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	if err := application.CheckSource(ctx); err != nil {
		appLogger.WithError(err).Warn("Storage bucket is not reachable")
	}

	// Cancel the run on SIGINT/SIGTERM; the stream and API calls stop with it.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	if *statusOnly {
		printJSON(application.Status.Status(ctx))
		return
	}

	result, err := application.Recorder.Run(ctx, service.RunContext{Manual: *manual})
	if err != nil {
		appLogger.WithError(err).Fatal("Run did not start")
	}

	appLogger.WithField(logger.FieldStatus, string(result.Status())).Info(service.Summary(result))
	printJSON(result)

	if _, skipped := result.(*domain.Skipped); skipped {
		application.Close()
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
	}
}
