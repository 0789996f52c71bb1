package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/timmy/dailyreel/internal/domain"
	drivev3 "google.golang.org/api/drive/v3"
)

// DefaultPageSize bounds a single listing.
const DefaultPageSize = 25

const listFields = "files(id, name, mimeType, size, createdTime, description, appProperties)"

// Config holds the folders the adapter works on.
type Config struct {
	FolderID        string
	ArchiveFolderID string // optional
	PageSize        int
}

// Adapter implements source.Source on a Google Drive folder.
type Adapter struct {
	files           *drivev3.FilesService
	folderID        string
	archiveFolderID string
	pageSize        int
}

// NewAdapter creates a new Drive adapter.
// Parameters:
//   - svc: authenticated Drive service.
//   - cfg: folder configuration.
// Returns:
//   - *Adapter: initialized Drive adapter.
func NewAdapter(svc *drivev3.Service, cfg Config) *Adapter {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Adapter{
		files:           svc.Files,
		folderID:        cfg.FolderID,
		archiveFolderID: cfg.ArchiveFolderID,
		pageSize:        pageSize,
	}
}

// GetSourceID returns the unique identifier for this source.
func (a *Adapter) GetSourceID() string {
	return "drive"
}

// GetDisplayName returns a human-readable name for this source.
func (a *Adapter) GetDisplayName() string {
	return fmt.Sprintf("Google Drive (%s)", a.folderID)
}

// PendingQuery builds the Drive search expression for unprocessed videos in folderID.
func PendingQuery(folderID string) string {
	return strings.Join([]string{
		fmt.Sprintf("'%s' in parents", escapeQuery(folderID)),
		"trashed = false",
		"mimeType contains 'video/'",
		fmt.Sprintf("not appProperties has { key='%s' and value='true' }", domain.MarkKeyUploaded),
	}, " and ")
}

func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// ListPending lists unprocessed videos in the folder, oldest first.
func (a *Adapter) ListPending(ctx context.Context) ([]domain.CandidateFile, error) {
	resp, err := a.files.List().
		Q(PendingQuery(a.folderID)).
		PageSize(int64(a.pageSize)).
		Fields(listFields).
		OrderBy("createdTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drive files: %w", err)
	}

	candidates := make([]domain.CandidateFile, 0, len(resp.Files))
	for _, f := range resp.Files {
		candidates = append(candidates, toCandidate(f))
	}
	return candidates, nil
}

func toCandidate(f *drivev3.File) domain.CandidateFile {
	c := domain.CandidateFile{
		ID:          f.Id,
		Name:        f.Name,
		Description: f.Description,
		MimeType:    f.MimeType,
	}
	if created, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
		c.CreatedTime = &created
	}
	if f.Size > 0 {
		size := f.Size
		c.Size = &size
	}
	return c
}

// OpenStream downloads the file content.
func (a *Adapter) OpenStream(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := a.files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	return resp.Body, nil
}

// MarkProcessed stores the processed marker as app properties.
func (a *Adapter) MarkProcessed(ctx context.Context, fileID string, mark domain.ProcessedMark) error {
	_, err := a.files.Update(fileID, &drivev3.File{AppProperties: mark.Attributes()}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to mark drive file %s as uploaded: %w", fileID, err)
	}
	return nil
}

// Archive moves the file from the watched folder into the archive folder.
func (a *Adapter) Archive(ctx context.Context, fileID string) (bool, error) {
	if a.archiveFolderID == "" {
		return false, nil
	}

	_, err := a.files.Update(fileID, &drivev3.File{}).
		AddParents(a.archiveFolderID).
		RemoveParents(a.folderID).
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("failed to move drive file %s to archive folder: %w", fileID, err)
	}
	return true, nil
}
