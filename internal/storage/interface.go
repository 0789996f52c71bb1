package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage defines the object operations the bucket source relies on.
type ObjectStorage interface {
	// List returns up to max objects under prefix, in key order.
	// A max of zero or less lists every object.
	List(ctx context.Context, prefix string, max int) ([]ObjectInfo, error)

	// Download opens an object for reading. The caller closes it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetTags returns the object's tag set.
	GetTags(ctx context.Context, key string) (map[string]string, error)

	// PutTags replaces the object's tag set.
	PutTags(ctx context.Context, key string, tags map[string]string) error

	// Copy duplicates an object inside the bucket, tags included.
	Copy(ctx context.Context, srcKey, dstKey string) error

	// Delete deletes an object from storage
	Delete(ctx context.Context, key string) error
}
