package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/events"
	"github.com/timmy/dailyreel/internal/logger"
)

// Runner executes one upload run.
type Runner interface {
	Run(ctx context.Context, rc RunContext) domain.RunResult
}

// RunHistory persists run records.
type RunHistory interface {
	Create(ctx context.Context, record *domain.RunRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}

// RunMetrics observes finished runs.
type RunMetrics interface {
	ObserveRun(result domain.RunResult, duration time.Duration)
}

// RunRecorder wraps a Runner for the trigger surfaces: it rejects
// overlapping runs and records every result to history, metrics and events.
// Recording failures are logged and never change the result.
type RunRecorder struct {
	runner    Runner
	guard     *RunGuard
	history   RunHistory
	metrics   RunMetrics
	publisher events.Publisher
	now       func() time.Time
}

// RunRecorderOptions holds the optional collaborators of a RunRecorder.
type RunRecorderOptions struct {
	Guard     *RunGuard
	History   RunHistory
	Metrics   RunMetrics
	Publisher events.Publisher
}

// NewRunRecorder creates a new run recorder.
func NewRunRecorder(runner Runner, opts RunRecorderOptions) *RunRecorder {
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &RunRecorder{
		runner:    runner,
		guard:     opts.Guard,
		history:   opts.History,
		metrics:   opts.Metrics,
		publisher: publisher,
		now:       time.Now,
	}
}

// Running reports whether a guarded run is in progress.
func (r *RunRecorder) Running() bool {
	return r.guard != nil && r.guard.Running()
}

// Run executes one run. The only error is ErrRunInProgress.
func (r *RunRecorder) Run(ctx context.Context, rc RunContext) (domain.RunResult, error) {
	if r.guard != nil {
		release, err := r.guard.TryAcquire()
		if err != nil {
			return nil, err
		}
		defer release()
	}

	runID := uuid.New().String()
	trigger := "scheduled"
	if rc.Manual {
		trigger = "manual"
	}
	ctx = logger.SetRunID(ctx, runID)
	ctx = logger.WithField(ctx, logger.FieldTrigger, trigger)

	startedAt := r.now()
	result := r.runner.Run(ctx, rc)
	finishedAt := r.now()
	duration := finishedAt.Sub(startedAt)

	logger.With(logger.Fields{logger.FieldCount: len(result.RunLogs())}).
		WithDuration(duration.Milliseconds()).
		WithStatus(string(result.Status())).
		Info(ctx, "Upload run finished")

	record := domain.NewRunRecord(runID, rc.Manual, result, startedAt, finishedAt)

	// Record even when the caller gave up on the run.
	ctx = context.WithoutCancel(ctx)
	if r.history != nil {
		if err := r.history.Create(ctx, record); err != nil {
			logger.FromContext(ctx).WithError(err).Warn("Failed to save run record")
		}
	}
	if r.metrics != nil {
		r.metrics.ObserveRun(result, duration)
	}
	if err := r.publisher.PublishRun(ctx, events.NewRunEvent(record)); err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to publish run event")
	}

	return result, nil
}
