package bucket

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/storage"
)

// DefaultPageSize bounds a single listing.
const DefaultPageSize = 25

var videoMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".3gp":  "video/3gpp",
}

// Config holds the key layout the adapter works on.
type Config struct {
	Prefix        string
	ArchivePrefix string // optional
	PageSize      int
}

// Adapter implements source.Source on an object storage bucket.
// Processed markers are stored as object tags.
type Adapter struct {
	store         storage.ObjectStorage
	prefix        string
	archivePrefix string
	pageSize      int
}

// NewAdapter creates a new bucket adapter.
// Parameters:
//   - store: object storage holding the videos.
//   - cfg: key layout configuration.
// Returns:
//   - *Adapter: initialized bucket adapter.
func NewAdapter(store storage.ObjectStorage, cfg Config) *Adapter {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Adapter{
		store:         store,
		prefix:        cfg.Prefix,
		archivePrefix: cfg.ArchivePrefix,
		pageSize:      pageSize,
	}
}

// GetSourceID returns the unique identifier for this source.
func (a *Adapter) GetSourceID() string {
	return "s3"
}

// GetDisplayName returns a human-readable name for this source.
func (a *Adapter) GetDisplayName() string {
	if a.prefix == "" {
		return "Bucket"
	}
	return fmt.Sprintf("Bucket (%s)", a.prefix)
}

// MimeTypeFor returns the video MIME type for key, or "" when the
// extension is not a known video container.
func MimeTypeFor(key string) string {
	return videoMimeTypes[strings.ToLower(path.Ext(key))]
}

// ListPending lists untagged videos under the prefix, oldest first.
// The whole prefix is listed and sorted before tags are read, so processed
// objects left in place never hide newer uploads. Tags are read in age order
// only until a page of candidates is collected.
func (a *Adapter) ListPending(ctx context.Context) ([]domain.CandidateFile, error) {
	objects, err := a.store.List(ctx, a.prefix, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket objects: %w", err)
	}

	videos := make([]storage.ObjectInfo, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if a.archivePrefix != "" && strings.HasPrefix(obj.Key, a.archivePrefix) {
			continue
		}
		if MimeTypeFor(obj.Key) == "" {
			continue
		}
		videos = append(videos, obj)
	}

	sort.SliceStable(videos, func(i, j int) bool {
		if !videos[i].LastModified.Equal(videos[j].LastModified) {
			return videos[i].LastModified.Before(videos[j].LastModified)
		}
		return videos[i].Key < videos[j].Key
	})

	candidates := make([]domain.CandidateFile, 0, a.pageSize)
	for _, obj := range videos {
		if len(candidates) >= a.pageSize {
			break
		}
		tags, err := a.store.GetTags(ctx, obj.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to read tags for %s: %w", obj.Key, err)
		}
		if tags[domain.MarkKeyUploaded] == "true" {
			continue
		}
		candidates = append(candidates, toCandidate(obj))
	}
	return candidates, nil
}

func toCandidate(obj storage.ObjectInfo) domain.CandidateFile {
	c := domain.CandidateFile{
		ID:       obj.Key,
		Name:     path.Base(obj.Key),
		MimeType: MimeTypeFor(obj.Key),
	}
	if !obj.LastModified.IsZero() {
		created := obj.LastModified
		c.CreatedTime = &created
	}
	if obj.Size > 0 {
		size := obj.Size
		c.Size = &size
	}
	return c
}

// OpenStream downloads the object content.
func (a *Adapter) OpenStream(ctx context.Context, key string) (io.ReadCloser, error) {
	body, err := a.store.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download object %s: %w", key, err)
	}
	return body, nil
}

// MarkProcessed stores the processed marker as object tags.
func (a *Adapter) MarkProcessed(ctx context.Context, key string, mark domain.ProcessedMark) error {
	if err := a.store.PutTags(ctx, key, mark.Attributes()); err != nil {
		return fmt.Errorf("failed to mark object %s as uploaded: %w", key, err)
	}
	return nil
}

// ArchiveKey maps a source key to its location under the archive prefix.
func (a *Adapter) ArchiveKey(key string) string {
	return a.archivePrefix + strings.TrimPrefix(key, a.prefix)
}

// Archive moves the object under the archive prefix (copy then delete).
func (a *Adapter) Archive(ctx context.Context, key string) (bool, error) {
	if a.archivePrefix == "" {
		return false, nil
	}

	dst := a.ArchiveKey(key)
	if err := a.store.Copy(ctx, key, dst); err != nil {
		return false, fmt.Errorf("failed to copy object %s to archive: %w", key, err)
	}
	if err := a.store.Delete(ctx, key); err != nil {
		return false, fmt.Errorf("failed to remove archived object %s: %w", key, err)
	}
	return true, nil
}
