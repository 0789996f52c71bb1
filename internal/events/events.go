// Package events publishes run outcomes to a message broker.
package events

import (
	"context"
	"time"

	"github.com/timmy/dailyreel/internal/domain"
)

// RunEvent is the message body published after every run.
type RunEvent struct {
	RunID          string                `json:"runId"`
	Status         domain.RunStatus      `json:"status"`
	Manual         bool                  `json:"manual"`
	Reason         string                `json:"reason,omitempty"`
	SourceFileID   string                `json:"sourceFileId,omitempty"`
	VideoID        string                `json:"videoId,omitempty"`
	Title          string                `json:"title,omitempty"`
	MetadataSource domain.MetadataSource `json:"metadataSource,omitempty"`
	StartedAt      time.Time             `json:"startedAt"`
	FinishedAt     time.Time             `json:"finishedAt"`
}

// NewRunEvent builds the event for a history record. Logs are not included.
func NewRunEvent(record *domain.RunRecord) RunEvent {
	return RunEvent{
		RunID:          record.ID,
		Status:         record.Status,
		Manual:         record.Manual,
		Reason:         record.Reason,
		SourceFileID:   record.SourceFileID,
		VideoID:        record.VideoID,
		Title:          record.Title,
		MetadataSource: record.MetadataSource,
		StartedAt:      record.StartedAt,
		FinishedAt:     record.FinishedAt,
	}
}

// Publisher delivers run events.
type Publisher interface {
	PublishRun(ctx context.Context, event RunEvent) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishRun(context.Context, RunEvent) error { return nil }
