package service

import (
	"context"
	"fmt"
	"time"

	"github.com/timmy/dailyreel/internal/config"
	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/source"
)

const recentRunsLimit = 5

// PendingVideoSummary is one pending video as shown on the dashboard.
type PendingVideoSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	Size        string `json:"size,omitempty"`
}

// AgentStatus reports whether the service is configured and what is queued.
type AgentStatus struct {
	EnvOK         bool                  `json:"envOk"`
	EnvIssues     []string              `json:"envIssues"`
	PendingVideos []PendingVideoSummary `json:"pendingVideos"`
	RecentRuns    []domain.RunRecord    `json:"recentRuns,omitempty"`
	Timestamp     string                `json:"timestamp"`
}

// StatusService is a read-through over configuration and the candidate source.
type StatusService struct {
	cfg     *config.Config
	source  source.CandidateSource
	history RunHistory
	now     func() time.Time
}

// NewStatusService creates a new status service.
// Parameters:
//   - cfg: loaded configuration, validated on every call.
//   - src: candidate source; may be nil when it could not be constructed.
//   - history: run history; may be nil when disabled.
//
// Returns:
//   - *StatusService: initialized service.
func NewStatusService(cfg *config.Config, src source.CandidateSource, history RunHistory) *StatusService {
	return &StatusService{
		cfg:     cfg,
		source:  src,
		history: history,
		now:     time.Now,
	}
}

// Status validates configuration and lists pending videos.
func (s *StatusService) Status(ctx context.Context) AgentStatus {
	status := AgentStatus{
		EnvIssues:     []string{},
		PendingVideos: []PendingVideoSummary{},
		Timestamp:     s.now().UTC().Format(logTimeFormat),
	}

	if issues := s.cfg.Validate(); len(issues) > 0 {
		status.EnvIssues = issues
		return status
	}
	if s.source == nil {
		status.EnvIssues = []string{"candidate source is not available"}
		return status
	}

	pending, err := s.source.ListPending(ctx)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Warn("Failed to list pending videos")
		status.EnvIssues = []string{err.Error()}
		return status
	}

	status.EnvOK = true
	for _, f := range pending {
		status.PendingVideos = append(status.PendingVideos, summarize(f))
	}

	if s.history != nil {
		runs, err := s.history.ListRecent(ctx, recentRunsLimit)
		if err != nil {
			logger.FromContext(ctx).WithError(err).Warn("Failed to load recent runs")
		} else {
			status.RecentRuns = runs
		}
	}
	return status
}

func summarize(f domain.CandidateFile) PendingVideoSummary {
	summary := PendingVideoSummary{ID: f.ID, Name: f.Name}
	if summary.Name == "" {
		summary.Name = "Untitled"
	}
	if f.CreatedTime != nil {
		summary.CreatedTime = f.CreatedTime.UTC().Format(time.RFC3339)
	}
	if f.Size != nil {
		summary.Size = FormatBytes(*f.Size)
	}
	return summary
}

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders size with one decimal in 1024-based units, e.g. "1.5 MB".
func FormatBytes(size int64) string {
	value := float64(size)
	index := 0
	for value >= 1024 && index < len(byteUnits)-1 {
		value /= 1024
		index++
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[index])
}
