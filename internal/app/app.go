// Package app assembles the upload pipeline from configuration. Both the API
// server and the one-shot CLI build their dependencies here.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/timmy/dailyreel/internal/config"
	"github.com/timmy/dailyreel/internal/events"
	"github.com/timmy/dailyreel/internal/google"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/metrics"
	"github.com/timmy/dailyreel/internal/repository"
	"github.com/timmy/dailyreel/internal/service"
	"github.com/timmy/dailyreel/internal/sink"
	"github.com/timmy/dailyreel/internal/sink/youtube"
	"github.com/timmy/dailyreel/internal/source"
	"github.com/timmy/dailyreel/internal/source/bucket"
	"github.com/timmy/dailyreel/internal/source/drive"
	"github.com/timmy/dailyreel/internal/storage"
)

// App holds the wired services.
type App struct {
	Config   *config.Config
	Source   source.Source // nil when the pipeline could not be built
	Recorder *service.RunRecorder
	Status   *service.StatusService
	History  *repository.RunRepository // nil when history is disabled
	Metrics  *metrics.Metrics          // nil when metrics are disabled

	store   *storage.S3Storage // set for the bucket source
	closers []func() error
}

// Options toggles the per-process parts of the wiring.
type Options struct {
	// Guard rejects overlapping runs started through this process.
	Guard bool
}

// Build wires every component described by cfg.
// An invalid configuration or a failing Google client does not fail Build:
// runs are then reported as skipped and status lists the issue. Only a
// run history database that cannot be opened fails Build.
// Parameters:
//   - ctx: context for client construction.
//   - cfg: loaded configuration.
//   - opts: process options.
//
// Returns:
//   - *App: wired application; call Close when done.
//   - error: non-nil if the run history database cannot be opened.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	log := logger.FromContext(ctx)
	a := &App{Config: cfg}

	var history service.RunHistory
	if cfg.Database.Enabled {
		db, err := repository.InitDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize run history: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		a.History = repository.NewRunRepository(db)
		history = a.History
	}

	var runMetrics service.RunMetrics
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		runMetrics = a.Metrics
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.AMQPURL != "" {
		rabbit, err := events.NewRabbitMQPublisher(events.RabbitMQConfig{
			URL:        cfg.Events.AMQPURL,
			Exchange:   cfg.Events.Exchange,
			RoutingKey: cfg.Events.RoutingKey,
		})
		if err != nil {
			log.WithError(err).Warn("Run events disabled")
		} else {
			publisher = rabbit
			a.closers = append(a.closers, rabbit.Close)
		}
	}

	var runner service.Runner
	uploadService, src, err := a.buildPipeline(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Upload pipeline unavailable")
		runner = service.NewUnavailableRunner(err)
	} else {
		a.Source = src
		runner = uploadService
	}

	var guard *service.RunGuard
	if opts.Guard {
		guard = &service.RunGuard{}
	}
	a.Recorder = service.NewRunRecorder(runner, service.RunRecorderOptions{
		Guard:     guard,
		History:   history,
		Metrics:   runMetrics,
		Publisher: publisher,
	})

	var statusSource source.CandidateSource
	if a.Source != nil {
		statusSource = a.Source
	}
	a.Status = service.NewStatusService(cfg, statusSource, history)

	return a, nil
}

// MetricsHandler returns the Prometheus handler, or nil when metrics are off.
func (a *App) MetricsHandler() http.Handler {
	if a.Metrics == nil {
		return nil
	}
	return a.Metrics.Handler()
}

// CheckSource verifies the bucket source is reachable. Other sources are
// checked lazily by the first listing.
func (a *App) CheckSource(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.CheckBucket(ctx)
}

// Close releases broker and database connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Failed to close resource: %v", err)
		}
	}
}

func (a *App) buildPipeline(ctx context.Context, cfg *config.Config) (*service.UploadService, source.Source, error) {
	if err := cfg.Err(); err != nil {
		return nil, nil, err
	}

	client, err := google.NewClient(ctx, cfg.Google)
	if err != nil {
		return nil, nil, err
	}

	src, err := a.buildSource(ctx, cfg, client)
	if err != nil {
		return nil, nil, err
	}

	yt, err := client.YouTube(ctx)
	if err != nil {
		return nil, nil, err
	}
	snk := sink.New(youtube.NewPublisher(yt), src)

	var completer service.Completer
	if cfg.LLM.Enabled() {
		completer = service.NewOpenAIClient(&service.OpenAIConfig{
			Model:       cfg.LLM.Model,
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		})
	}

	return service.NewUploadService(src, snk, service.NewMetadataService(completer), cfg.Upload), src, nil
}

func (a *App) buildSource(ctx context.Context, cfg *config.Config, client *google.Client) (source.Source, error) {
	switch cfg.Source.Type {
	case config.SourceTypeDrive:
		svc, err := client.Drive(ctx)
		if err != nil {
			return nil, err
		}
		return drive.NewAdapter(svc, drive.Config{
			FolderID:        cfg.Source.Drive.FolderID,
			ArchiveFolderID: cfg.Source.Drive.ArchiveFolderID,
			PageSize:        cfg.Source.PageSize,
		}), nil

	case config.SourceTypeBucket:
		store, err := storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Storage.Type),
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		a.store = store
		return bucket.NewAdapter(store, bucket.Config{
			Prefix:        cfg.Storage.Prefix,
			ArchivePrefix: cfg.Storage.ArchivePrefix,
			PageSize:      cfg.Source.PageSize,
		}), nil

	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}
}
