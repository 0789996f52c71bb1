package sink

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/timmy/dailyreel/internal/domain"
)

type fakePublisher struct {
	videoID string
	err     error
	body    string
	meta    VideoMetadata
}

func (f *fakePublisher) Publish(_ context.Context, media io.Reader, meta VideoMetadata) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(media)
	f.body = string(b)
	f.meta = meta
	return f.videoID, nil
}

type fakeMarker struct {
	marks      map[string]domain.ProcessedMark
	markErr    error
	archived   []string
	archiveErr error
	noArchive  bool
}

func (f *fakeMarker) MarkProcessed(_ context.Context, id string, mark domain.ProcessedMark) error {
	if f.markErr != nil {
		return f.markErr
	}
	if f.marks == nil {
		f.marks = map[string]domain.ProcessedMark{}
	}
	f.marks[id] = mark
	return nil
}

func (f *fakeMarker) Archive(_ context.Context, id string) (bool, error) {
	if f.noArchive {
		return false, nil
	}
	if f.archiveErr != nil {
		return false, f.archiveErr
	}
	f.archived = append(f.archived, id)
	return true, nil
}

func TestSink_Upload(t *testing.T) {
	fixed := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	req := UploadRequest{
		FileID:        "file-1",
		Stream:        strings.NewReader("video-bytes"),
		Title:         "T",
		Description:   "D",
		Tags:          []string{"a"},
		PrivacyStatus: "unlisted",
		CategoryID:    "22",
	}

	t.Run("publishes marks and archives", func(t *testing.T) {
		pub := &fakePublisher{videoID: "vid-1"}
		marker := &fakeMarker{}
		s := New(pub, marker).WithClock(func() time.Time { return fixed })

		res, err := s.Upload(context.Background(), req)
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
		if res.VideoID != "vid-1" || !res.Archived || res.ArchiveErr != nil {
			t.Errorf("unexpected result: %+v", res)
		}
		if pub.body != "video-bytes" || pub.meta.Title != "T" || pub.meta.PrivacyStatus != "unlisted" {
			t.Errorf("unexpected publish: body=%q meta=%+v", pub.body, pub.meta)
		}
		mark := marker.marks["file-1"]
		if mark.VideoID != "vid-1" || !mark.ProcessedAt.Equal(fixed) {
			t.Errorf("unexpected mark: %+v", mark)
		}
	})

	t.Run("publish failure skips mark", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("quota exceeded")}
		marker := &fakeMarker{}

		_, err := New(pub, marker).Upload(context.Background(), req)
		if err == nil || err.Error() != "quota exceeded" {
			t.Fatalf("expected publish error, got %v", err)
		}
		if len(marker.marks) != 0 || len(marker.archived) != 0 {
			t.Errorf("expected no side effects, got marks=%v archived=%v", marker.marks, marker.archived)
		}
	})

	t.Run("empty video id still marks and archives", func(t *testing.T) {
		marker := &fakeMarker{}
		s := New(&fakePublisher{}, marker).WithClock(func() time.Time { return fixed })

		res, err := s.Upload(context.Background(), req)
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
		if res.VideoID != "" || !res.Archived {
			t.Errorf("unexpected result: %+v", res)
		}
		mark, ok := marker.marks["file-1"]
		if !ok {
			t.Fatal("file was not marked processed")
		}
		if mark.VideoID != "" || !mark.ProcessedAt.Equal(fixed) {
			t.Errorf("unexpected mark: %+v", mark)
		}
		if len(marker.archived) != 1 {
			t.Errorf("archived = %v, want file-1", marker.archived)
		}
	})

	t.Run("mark failure is an error", func(t *testing.T) {
		marker := &fakeMarker{markErr: errors.New("permission denied")}
		res, err := New(&fakePublisher{videoID: "vid-2"}, marker).Upload(context.Background(), req)
		if err == nil || !strings.Contains(err.Error(), "vid-2") {
			t.Fatalf("expected mark error naming the video, got %v", err)
		}
		if res.VideoID != "vid-2" || len(marker.archived) != 0 {
			t.Errorf("unexpected result after mark failure: %+v archived=%v", res, marker.archived)
		}
	})

	t.Run("archive failure is reported not returned", func(t *testing.T) {
		marker := &fakeMarker{archiveErr: errors.New("move denied")}
		res, err := New(&fakePublisher{videoID: "vid-3"}, marker).Upload(context.Background(), req)
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
		if res.Archived || res.ArchiveErr == nil {
			t.Errorf("expected archive error in result, got %+v", res)
		}
	})

	t.Run("no archive location", func(t *testing.T) {
		marker := &fakeMarker{noArchive: true}
		res, err := New(&fakePublisher{videoID: "vid-4"}, marker).Upload(context.Background(), req)
		if err != nil || res.Archived || res.ArchiveErr != nil {
			t.Errorf("unexpected result %+v err=%v", res, err)
		}
	})
}
