package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timmy/dailyreel/internal/config"
	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/sink"
	"github.com/timmy/dailyreel/internal/source"
)

const (
	// NoPendingReason is the skip reason when the source has nothing to upload.
	NoPendingReason = "No pending videos available"

	untitledName   = "Untitled Video"
	uploadDateForm = "January 2, 2006"
)

// ErrNoPendingVideos is returned by a run step when the source is empty.
var ErrNoPendingVideos = errors.New("no pending videos available")

// Uploader publishes a stream and marks its source file processed.
type Uploader interface {
	Upload(ctx context.Context, req sink.UploadRequest) (sink.UploadResult, error)
}

// RunContext describes how a run was triggered.
type RunContext struct {
	Manual bool
}

// UploadService runs one upload: pick the oldest pending video, prepare
// metadata, upload it and mark it processed.
type UploadService struct {
	source   source.CandidateSource
	uploader Uploader
	metadata *MetadataService
	cfg      config.UploadConfig
	now      func() time.Time
}

// NewUploadService creates a new upload orchestrator.
// Parameters:
//   - src: candidate source to list and stream from.
//   - uploader: sink that publishes and marks processed.
//   - metadata: metadata generator.
//   - cfg: upload settings, validated at the start of every run.
//
// Returns:
//   - *UploadService: initialized orchestrator.
func NewUploadService(
	src source.CandidateSource,
	uploader Uploader,
	metadata *MetadataService,
	cfg config.UploadConfig,
) *UploadService {
	return &UploadService{
		source:   src,
		uploader: uploader,
		metadata: metadata,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock overrides the clock used for upload dates and log timestamps.
func (s *UploadService) WithClock(now func() time.Time) *UploadService {
	s.now = now
	return s
}

// Run performs a single upload attempt. It never returns an error: every
// failure is reported as *domain.Skipped carrying the logs recorded so far.
func (s *UploadService) Run(ctx context.Context, rc RunContext) domain.RunResult {
	ctx = logger.SetComponent(ctx, "uploader")
	runLog := newRunLogger(ctx, s.now)

	runLog.Info("Starting upload agent run", map[string]interface{}{"manual": rc.Manual})

	uploaded, err := s.execute(ctx, runLog)
	if err != nil {
		if errors.Is(err, ErrNoPendingVideos) {
			return &domain.Skipped{Reason: NoPendingReason, Logs: runLog.Entries()}
		}
		runLog.Error("Agent run failed", map[string]interface{}{"error": err.Error()})
		return &domain.Skipped{Reason: err.Error(), Logs: runLog.Entries()}
	}

	uploaded.Logs = runLog.Entries()
	return uploaded
}

func (s *UploadService) execute(ctx context.Context, runLog *RunLogger) (*domain.Uploaded, error) {
	cfg := s.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pending, err := s.source.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		runLog.Info("No pending videos in Drive folder", nil)
		return nil, ErrNoPendingVideos
	}

	file := pending[0]
	runLog.Info("Selected Drive file for upload", map[string]interface{}{
		"fileId":   file.ID,
		"fileName": file.Name,
	})
	ctx = logger.WithField(ctx, logger.FieldFileID, file.ID)

	name := file.Name
	if name == "" {
		name = untitledName
	}
	vars := map[string]string{
		"originalName": name,
		"uploadDate":   s.now().Format(uploadDateForm),
	}

	meta, err := s.metadata.Generate(ctx, MetadataInput{
		File:               file,
		DefaultTitle:       RenderTemplate(cfg.TitleTemplate, vars),
		DefaultDescription: RenderTemplate(cfg.DescriptionTemplate, vars),
		DefaultTags:        cfg.DefaultTags,
	})
	if err != nil {
		return nil, err
	}
	runLog.Info("Prepared metadata", map[string]interface{}{
		"source": meta.Source,
		"title":  meta.Title,
	})

	stream, err := s.source.OpenStream(ctx, file.ID)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	res, err := s.uploader.Upload(ctx, sink.UploadRequest{
		FileID:        file.ID,
		Stream:        stream,
		Title:         meta.Title,
		Description:   meta.Description,
		Tags:          meta.Tags,
		PrivacyStatus: cfg.PrivacyStatus,
		CategoryID:    cfg.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	runLog.Info("Upload completed", map[string]interface{}{
		"videoId": res.VideoID,
		"fileId":  file.ID,
	})
	if res.ArchiveErr != nil {
		runLog.Warn("Failed to move file to archive folder", map[string]interface{}{
			"fileId": file.ID,
			"error":  res.ArchiveErr.Error(),
		})
	}

	return &domain.Uploaded{
		VideoID:        res.VideoID,
		SourceFileID:   file.ID,
		Title:          meta.Title,
		Description:    meta.Description,
		Tags:           meta.Tags,
		MetadataSource: meta.Source,
	}, nil
}

// NewUnavailableRunner returns a Runner that reports err as a skipped run.
// It stands in for the upload service when the pipeline cannot be built.
func NewUnavailableRunner(err error) Runner {
	return unavailableRunner{err: err}
}

type unavailableRunner struct {
	err error
}

func (u unavailableRunner) Run(ctx context.Context, rc RunContext) domain.RunResult {
	runLog := NewRunLogger(logger.SetComponent(ctx, "uploader"))
	runLog.Info("Starting upload agent run", map[string]interface{}{"manual": rc.Manual})
	runLog.Error("Agent run failed", map[string]interface{}{"error": u.err.Error()})
	return &domain.Skipped{Reason: u.err.Error(), Logs: runLog.Entries()}
}

// Summary renders a result as one line for CLI output.
func Summary(result domain.RunResult) string {
	switch r := result.(type) {
	case *domain.Uploaded:
		if r.VideoID == "" {
			return fmt.Sprintf("uploaded %s without a video id (%s metadata)", r.SourceFileID, r.MetadataSource)
		}
		return fmt.Sprintf("uploaded %s as video %s (%s metadata)", r.SourceFileID, r.VideoID, r.MetadataSource)
	case *domain.Skipped:
		return "skipped: " + r.Reason
	default:
		return "unknown result"
	}
}
