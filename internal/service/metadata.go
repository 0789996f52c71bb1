package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/prompts"
)

// MetadataInput is what the generator needs for one candidate.
type MetadataInput struct {
	File               domain.CandidateFile
	DefaultTitle       string
	DefaultDescription string
	DefaultTags        []string
}

// MetadataService proposes publishing metadata with a language model and
// degrades to the rendered template when the model is unavailable.
type MetadataService struct {
	completer Completer
}

// NewMetadataService creates a new metadata generator.
// Parameters:
//   - completer: language model client; nil disables model generation.
//
// Returns:
//   - *MetadataService: initialized generator.
func NewMetadataService(completer Completer) *MetadataService {
	return &MetadataService{completer: completer}
}

// IsEnabled returns true if a language model is configured.
func (s *MetadataService) IsEnabled() bool {
	return s.completer != nil
}

// Tags stays raw: a reply whose tags are not an array keeps its title and
// description and only the tags fall back.
type modelMetadata struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tags        json.RawMessage `json:"tags"`
}

// Generate returns model metadata, or the template defaults when no model is
// configured, the model returns nothing, or its output cannot be parsed.
// A failed model call is returned as an error.
func (s *MetadataService) Generate(ctx context.Context, in MetadataInput) (domain.MetadataResult, error) {
	if s.completer == nil {
		return fallbackMetadata(in), nil
	}

	userPrompt := prompts.BuildMetadataPrompt(prompts.MetadataPromptInput{
		FileName:           in.File.Name,
		Description:        in.File.Description,
		DefaultTitle:       in.DefaultTitle,
		DefaultDescription: in.DefaultDescription,
		DefaultTags:        in.DefaultTags,
	})

	content, err := s.completer.Complete(ctx, prompts.MetadataSystemPrompt, userPrompt)
	if err != nil {
		return domain.MetadataResult{}, fmt.Errorf("metadata generation failed: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		logger.CtxInfo(ctx, "Model returned no content, using template metadata")
		return fallbackMetadata(in), nil
	}

	parsed, err := parseMetadata(content)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Info("Failed to parse model metadata, using template metadata")
		return fallbackMetadata(in), nil
	}

	result := domain.MetadataResult{
		Title:       strings.TrimSpace(parsed.Title),
		Description: strings.TrimSpace(parsed.Description),
		Tags:        cleanTags(decodeTags(parsed.Tags)),
		Source:      domain.MetadataSourceAI,
	}
	if result.Title == "" {
		result.Title = in.DefaultTitle
	}
	if result.Description == "" {
		result.Description = in.DefaultDescription
	}
	if len(result.Tags) == 0 {
		result.Tags = in.DefaultTags
	}
	return result, nil
}

func fallbackMetadata(in MetadataInput) domain.MetadataResult {
	return domain.MetadataResult{
		Title:       in.DefaultTitle,
		Description: in.DefaultDescription,
		Tags:        in.DefaultTags,
		Source:      domain.MetadataSourceTemplate,
	}
}

// parseMetadata decodes the first JSON object found in content.
func parseMetadata(content string) (*modelMetadata, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var meta modelMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &meta, nil
}

// extractJSONObject returns the first balanced {...} in content, skipping
// braces inside JSON strings. Surrounding prose or code fences are ignored.
func extractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	if start == -1 {
		return "", errors.New("no JSON found in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], nil
			}
		}
	}
	return "", errors.New("incomplete JSON in response")
}

// decodeTags returns the string elements of a JSON array. Anything else,
// including a missing field, yields nil.
func decodeTags(raw json.RawMessage) []string {
	var items []interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return nil
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if tag, ok := item.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

func cleanTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
		if len(out) == prompts.MaxTags {
			break
		}
	}
	return out
}
