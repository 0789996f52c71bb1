// Package sink publishes a video and records the outcome on the source file.
package sink

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/source"
)

// VideoMetadata is what the hosting platform receives alongside the bytes.
type VideoMetadata struct {
	Title         string
	Description   string
	Tags          []string
	PrivacyStatus string
	CategoryID    string // optional
}

// Publisher transfers a video to the hosting platform.
type Publisher interface {
	Publish(ctx context.Context, media io.Reader, meta VideoMetadata) (videoID string, err error)
}

// UploadRequest describes one upload.
type UploadRequest struct {
	FileID        string
	Stream        io.Reader
	Title         string
	Description   string
	Tags          []string
	PrivacyStatus string
	CategoryID    string
}

// UploadResult reports what the sink did.
type UploadResult struct {
	VideoID  string // empty when the host accepted the upload without an id
	Archived bool
	// ArchiveErr is set when the best-effort archive move failed.
	ArchiveErr error
}

// Sink couples publishing with marking the source file processed.
type Sink struct {
	publisher Publisher
	marker    source.ProcessedMarker
	now       func() time.Time
}

// New creates a Sink.
// Parameters:
//   - publisher: hosting platform client.
//   - marker: source adapter that owns the processed tag.
// Returns:
//   - *Sink: initialized sink.
func New(publisher Publisher, marker source.ProcessedMarker) *Sink {
	return &Sink{
		publisher: publisher,
		marker:    marker,
		now:       time.Now,
	}
}

// WithClock overrides the timestamp source used for processed marks.
func (s *Sink) WithClock(now func() time.Time) *Sink {
	s.now = now
	return s
}

// Upload publishes the stream, marks the source file processed and then
// tries to archive it. A failed mark is returned as an error even though the
// video is already published; a failed archive only sets ArchiveErr.
// An accepted upload without a video id is still marked, with an empty id,
// so the file is not published again by the next run.
func (s *Sink) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	videoID, err := s.publisher.Publish(ctx, req.Stream, VideoMetadata{
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		PrivacyStatus: req.PrivacyStatus,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		return UploadResult{}, err
	}
	if videoID == "" {
		logger.CtxWarn(ctx, "Upload accepted without a video id: file_id=%s", req.FileID)
	}

	mark := domain.ProcessedMark{VideoID: videoID, ProcessedAt: s.now()}
	if err := s.marker.MarkProcessed(ctx, req.FileID, mark); err != nil {
		return UploadResult{VideoID: videoID}, fmt.Errorf("video %s uploaded but not marked processed: %w", videoID, err)
	}

	result := UploadResult{VideoID: videoID}
	result.Archived, result.ArchiveErr = s.marker.Archive(ctx, req.FileID)
	return result, nil
}
