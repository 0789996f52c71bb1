package service

import (
	"context"
	"testing"
	"time"

	"github.com/timmy/dailyreel/internal/domain"
)

func TestRunLogger(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 1, 5, 10, 0, 0, 123_000_000, time.UTC),
		time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC), // clock went backwards
		time.Date(2025, 1, 5, 11, 0, 1, 0, time.FixedZone("CET", 3600)),
	}
	i := 0
	clock := func() time.Time {
		ts := times[i]
		i++
		return ts
	}

	l := newRunLogger(context.Background(), clock)
	l.Info("first", map[string]interface{}{"manual": true})
	l.Warn("second", nil)
	l.Error("third", nil)

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantLevels := []domain.LogLevel{domain.LogLevelInfo, domain.LogLevelWarn, domain.LogLevelError}
	for idx, e := range entries {
		if e.Level != wantLevels[idx] {
			t.Errorf("entry %d level = %s, want %s", idx, e.Level, wantLevels[idx])
		}
	}

	if entries[0].Timestamp != "2025-01-05T10:00:00.123Z" {
		t.Errorf("unexpected timestamp format %q", entries[0].Timestamp)
	}
	if entries[1].Timestamp != entries[0].Timestamp {
		t.Errorf("expected non-decreasing timestamp, got %q after %q", entries[1].Timestamp, entries[0].Timestamp)
	}
	if entries[2].Timestamp != "2025-01-05T10:00:01.000Z" {
		t.Errorf("expected UTC timestamp, got %q", entries[2].Timestamp)
	}
	if entries[0].Details["manual"] != true {
		t.Errorf("details not kept: %v", entries[0].Details)
	}
}

func TestRunLogger_IndependentPerRun(t *testing.T) {
	a := NewRunLogger(context.Background())
	b := NewRunLogger(context.Background())

	a.Info("only in a", nil)

	if len(a.Entries()) != 1 || len(b.Entries()) != 0 {
		t.Errorf("loggers share state: a=%d b=%d", len(a.Entries()), len(b.Entries()))
	}
}
