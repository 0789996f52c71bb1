package drive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/timmy/dailyreel/internal/domain"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc, cfg Config) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := drivev3.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	if err != nil {
		t.Fatalf("drive.NewService: %v", err)
	}
	return NewAdapter(svc, cfg)
}

func TestPendingQuery(t *testing.T) {
	got := PendingQuery("abc'123")
	want := `'abc\'123' in parents and trashed = false and mimeType contains 'video/' and not appProperties has { key='uploaded' and value='true' }`
	if got != want {
		t.Errorf("PendingQuery() =\n%s\nwant\n%s", got, want)
	}
}

func TestAdapter_ListPending(t *testing.T) {
	var gotQuery, gotOrder, gotPageSize string
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("q")
		gotOrder = r.URL.Query().Get("orderBy")
		gotPageSize = r.URL.Query().Get("pageSize")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"files":[
			{"id":"f1","name":"first.mp4","mimeType":"video/mp4","size":"2048","createdTime":"2025-01-04T08:00:00Z","description":"morning"},
			{"id":"f2","name":"second.mov","mimeType":"video/quicktime"}
		]}`)
	}, Config{FolderID: "folder-1"})

	files, err := adapter.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending() error = %v", err)
	}

	if gotQuery != PendingQuery("folder-1") {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if gotOrder != "createdTime" || gotPageSize != "25" {
		t.Errorf("unexpected orderBy=%q pageSize=%q", gotOrder, gotPageSize)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	first := files[0]
	if first.ID != "f1" || first.Name != "first.mp4" || first.Description != "morning" {
		t.Errorf("unexpected first file: %+v", first)
	}
	if first.Size == nil || *first.Size != 2048 {
		t.Errorf("expected size 2048, got %v", first.Size)
	}
	wantCreated := time.Date(2025, 1, 4, 8, 0, 0, 0, time.UTC)
	if first.CreatedTime == nil || !first.CreatedTime.Equal(wantCreated) {
		t.Errorf("expected created time %v, got %v", wantCreated, first.CreatedTime)
	}
	if files[1].Size != nil || files[1].CreatedTime != nil {
		t.Errorf("expected optional fields unset, got %+v", files[1])
	}
}

func TestAdapter_MarkProcessed(t *testing.T) {
	var body drivev3.File
	var method, path string
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"f1"}`)
	}, Config{FolderID: "folder-1"})

	mark := domain.ProcessedMark{VideoID: "vid-9", ProcessedAt: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)}
	if err := adapter.MarkProcessed(context.Background(), "f1", mark); err != nil {
		t.Fatalf("MarkProcessed() error = %v", err)
	}

	if method != http.MethodPatch || path != "/files/f1" {
		t.Errorf("unexpected request %s %s", method, path)
	}
	if body.AppProperties["uploaded"] != "true" || body.AppProperties["youtubeVideoId"] != "vid-9" {
		t.Errorf("unexpected app properties: %v", body.AppProperties)
	}
}

func TestAdapter_Archive(t *testing.T) {
	t.Run("no archive folder", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}, Config{FolderID: "folder-1"})

		moved, err := adapter.Archive(context.Background(), "f1")
		if moved || err != nil {
			t.Errorf("expected no-op, got moved=%v err=%v", moved, err)
		}
	})

	t.Run("moves parents", func(t *testing.T) {
		var add, remove string
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			add = r.URL.Query().Get("addParents")
			remove = r.URL.Query().Get("removeParents")
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"f1"}`)
		}, Config{FolderID: "folder-1", ArchiveFolderID: "archive-1"})

		moved, err := adapter.Archive(context.Background(), "f1")
		if !moved || err != nil {
			t.Fatalf("expected move, got moved=%v err=%v", moved, err)
		}
		if add != "archive-1" || remove != "folder-1" {
			t.Errorf("unexpected parents add=%q remove=%q", add, remove)
		}
	})

	t.Run("api failure", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
		}, Config{FolderID: "folder-1", ArchiveFolderID: "archive-1"})

		moved, err := adapter.Archive(context.Background(), "f1")
		if moved || err == nil || !strings.Contains(err.Error(), "archive folder") {
			t.Errorf("expected wrapped error, got moved=%v err=%v", moved, err)
		}
	})
}
