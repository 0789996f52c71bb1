// Package youtube implements sink.Publisher with the YouTube Data API.
package youtube

import (
	"context"
	"fmt"
	"io"

	"github.com/timmy/dailyreel/internal/sink"
	youtubev3 "google.golang.org/api/youtube/v3"
)

// DefaultPrivacyStatus applies when the request leaves privacy empty.
const DefaultPrivacyStatus = "private"

// Publisher uploads videos through videos.insert.
type Publisher struct {
	videos *youtubev3.VideosService
}

// NewPublisher creates a new YouTube publisher.
func NewPublisher(svc *youtubev3.Service) *Publisher {
	return &Publisher{videos: svc.Videos}
}

// Publish uploads media as a new video and returns its id.
func (p *Publisher) Publish(ctx context.Context, media io.Reader, meta sink.VideoMetadata) (string, error) {
	video, err := p.videos.Insert([]string{"snippet", "status"}, buildVideo(meta)).
		Media(media).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("youtube upload failed: %w", err)
	}
	return video.Id, nil
}

func buildVideo(meta sink.VideoMetadata) *youtubev3.Video {
	privacy := meta.PrivacyStatus
	if privacy == "" {
		privacy = DefaultPrivacyStatus
	}

	snippet := &youtubev3.VideoSnippet{
		Title:       meta.Title,
		Description: meta.Description,
		CategoryId:  meta.CategoryID,
	}
	if len(meta.Tags) > 0 {
		snippet.Tags = meta.Tags
	}

	return &youtubev3.Video{
		Snippet: snippet,
		Status: &youtubev3.VideoStatus{
			PrivacyStatus:           privacy,
			SelfDeclaredMadeForKids: false,
			// false is the zero value and would be dropped otherwise.
			ForceSendFields: []string{"SelfDeclaredMadeForKids"},
		},
	}
}
