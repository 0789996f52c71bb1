package prompts

import (
	"strings"
	"testing"
)

func TestBuildMetadataPrompt(t *testing.T) {
	tests := []struct {
		name     string
		in       MetadataPromptInput
		contains []string
	}{
		{
			name: "full context",
			in: MetadataPromptInput{
				FileName:           "clip.mp4",
				Description:        "Sunrise over the bay",
				DefaultTitle:       "Daily Upload: clip.mp4",
				DefaultDescription: "Automatically scheduled upload.",
				DefaultTags:        []string{"daily", "vlog"},
			},
			contains: []string{
				"File name: clip.mp4",
				"Sunrise over the bay",
				"Default title suggestion: Daily Upload: clip.mp4",
				"Default tags: daily, vlog",
				"up to 15 SEO-friendly tags",
			},
		},
		{
			name: "fallbacks",
			in:   MetadataPromptInput{DefaultTitle: "T", DefaultDescription: "D"},
			contains: []string{
				"File name: untitled.mp4",
				"No description provided.",
				"Default tags: None",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildMetadataPrompt(tt.in)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("prompt missing %q:\n%s", want, got)
				}
			}
		})
	}
}
