package service

import (
	"context"
	"sync"
	"time"

	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
)

// logTimeFormat is ISO-8601 in UTC with millisecond precision.
const logTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// RunLogger collects the audit trail of a single run.
// A new RunLogger is created for every run.
type RunLogger struct {
	ctx     context.Context
	now     func() time.Time
	mu      sync.Mutex
	last    time.Time
	entries []domain.LogEntry
}

// NewRunLogger creates a run logger that also mirrors entries to the
// process logger carried by ctx.
func NewRunLogger(ctx context.Context) *RunLogger {
	return newRunLogger(ctx, time.Now)
}

func newRunLogger(ctx context.Context, now func() time.Time) *RunLogger {
	return &RunLogger{
		ctx:     ctx,
		now:     now,
		entries: make([]domain.LogEntry, 0, 8),
	}
}

// Log appends an entry stamped with the current time.
func (l *RunLogger) Log(level domain.LogLevel, message string, details map[string]interface{}) {
	l.mu.Lock()
	// timestamps never go backwards within a run
	ts := l.now()
	if ts.Before(l.last) {
		ts = l.last
	}
	l.last = ts
	entry := domain.LogEntry{
		Level:     level,
		Message:   message,
		Timestamp: ts.UTC().Format(logTimeFormat),
		Details:   details,
	}
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	l.mirror(entry)
}

// Info appends an info entry.
func (l *RunLogger) Info(message string, details map[string]interface{}) {
	l.Log(domain.LogLevelInfo, message, details)
}

// Warn appends a warn entry.
func (l *RunLogger) Warn(message string, details map[string]interface{}) {
	l.Log(domain.LogLevelWarn, message, details)
}

// Error appends an error entry.
func (l *RunLogger) Error(message string, details map[string]interface{}) {
	l.Log(domain.LogLevelError, message, details)
}

// Entries returns the entries recorded so far, in order.
func (l *RunLogger) Entries() []domain.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

func (l *RunLogger) mirror(entry domain.LogEntry) {
	log := logger.FromContext(l.ctx)
	if len(entry.Details) > 0 {
		log = log.WithFields(logger.Fields(entry.Details))
	}

	switch entry.Level {
	case domain.LogLevelError:
		log.Error(entry.Message)
	case domain.LogLevelWarn:
		log.Warn(entry.Message)
	default:
		log.Info(entry.Message)
	}
}
