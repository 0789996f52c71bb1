package source

import (
	"context"
	"io"

	"github.com/timmy/dailyreel/internal/domain"
)

// CandidateSource lists pending videos and streams their bytes.
type CandidateSource interface {
	// ListPending returns unprocessed video files, oldest first, bounded
	// to the adapter's page size. Files already marked processed are excluded.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	// Returns:
	//   - []domain.CandidateFile: pending candidates in source order.
	//   - error: non-nil if listing fails.
	ListPending(ctx context.Context) ([]domain.CandidateFile, error)

	// OpenStream opens the file content for reading. The caller closes it.
	OpenStream(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// ProcessedMarker records the outcome of an upload on the source file.
type ProcessedMarker interface {
	// MarkProcessed tags the file so it is excluded from later listings.
	MarkProcessed(ctx context.Context, fileID string, mark domain.ProcessedMark) error

	// Archive moves the file to the configured archive location.
	// Returns moved=false and no error when no archive location is configured.
	Archive(ctx context.Context, fileID string) (moved bool, err error)
}

// Source is a complete candidate source adapter.
type Source interface {
	CandidateSource
	ProcessedMarker

	// GetSourceID returns the stable identifier of this source (drive, s3).
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	GetDisplayName() string
}
