package youtube

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/timmy/dailyreel/internal/sink"
	youtubev3 "google.golang.org/api/youtube/v3"
	"google.golang.org/api/option"
)

func TestBuildVideo(t *testing.T) {
	tests := []struct {
		name        string
		meta        sink.VideoMetadata
		wantPrivacy string
		wantTags    int
	}{
		{
			name:        "defaults privacy",
			meta:        sink.VideoMetadata{Title: "T", Description: "D"},
			wantPrivacy: "private",
		},
		{
			name:        "keeps explicit privacy and tags",
			meta:        sink.VideoMetadata{Title: "T", PrivacyStatus: "unlisted", Tags: []string{"a", "b"}, CategoryID: "22"},
			wantPrivacy: "unlisted",
			wantTags:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := buildVideo(tt.meta)
			if v.Status.PrivacyStatus != tt.wantPrivacy {
				t.Errorf("privacy = %q, want %q", v.Status.PrivacyStatus, tt.wantPrivacy)
			}
			if len(v.Snippet.Tags) != tt.wantTags {
				t.Errorf("tags = %v, want %d", v.Snippet.Tags, tt.wantTags)
			}
			if v.Snippet.CategoryId != tt.meta.CategoryID {
				t.Errorf("category = %q, want %q", v.Snippet.CategoryId, tt.meta.CategoryID)
			}

			raw, err := json.Marshal(v.Status)
			if err != nil {
				t.Fatalf("marshal status: %v", err)
			}
			if !strings.Contains(string(raw), `"selfDeclaredMadeForKids":false`) {
				t.Errorf("expected explicit made-for-kids flag, got %s", raw)
			}
		})
	}
}

func TestPublisher_Publish(t *testing.T) {
	var gotParts, gotMedia string
	var gotVideo youtubev3.Video

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParts = strings.Join(r.URL.Query()["part"], ",")

		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			t.Errorf("parse content type: %v", err)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		meta, err := mr.NextPart()
		if err != nil {
			t.Errorf("metadata part: %v", err)
			return
		}
		_ = json.NewDecoder(meta).Decode(&gotVideo)
		media, err := mr.NextPart()
		if err != nil {
			t.Errorf("media part: %v", err)
			return
		}
		b, _ := io.ReadAll(media)
		gotMedia = string(b)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"vid-123"}`)
	}))
	defer srv.Close()

	svc, err := youtubev3.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	if err != nil {
		t.Fatalf("youtube.NewService: %v", err)
	}

	id, err := NewPublisher(svc).Publish(context.Background(), strings.NewReader("video-bytes"), sink.VideoMetadata{
		Title:       "Morning clip",
		Description: "D",
		Tags:        []string{"daily"},
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if id != "vid-123" {
		t.Errorf("id = %q, want vid-123", id)
	}
	if gotParts != "snippet,status" {
		t.Errorf("part = %q", gotParts)
	}
	if gotVideo.Snippet == nil || gotVideo.Snippet.Title != "Morning clip" {
		t.Errorf("unexpected video metadata: %+v", gotVideo.Snippet)
	}
	if gotMedia != "video-bytes" {
		t.Errorf("media = %q", gotMedia)
	}
}
