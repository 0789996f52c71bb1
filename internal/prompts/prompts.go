package prompts

import (
	"fmt"
	"strings"
)

// ============================================================================
// Metadata Prompts
// ============================================================================

// MaxTags is the number of tags the model is asked for and the most kept.
const MaxTags = 15

// MetadataSystemPrompt fixes the role and the response shape.
const MetadataSystemPrompt = `You are a YouTube content strategist. Respond ONLY with valid JSON that matches the schema: {"title": string, "description": string, "tags": string[]}. Do not wrap the JSON in Markdown or add any commentary. The description should be multi-line but avoid Markdown lists.`

// metadataUserTemplate takes, in order: file name, existing description,
// default title, default description, default tags, tag limit.
const metadataUserTemplate = `You will create metadata for a YouTube upload.

File name: %s
Existing description:
%s

Default title suggestion: %s
Default description suggestion:
%s

Default tags: %s

Generate an engaging but accurate title, a friendly multi-paragraph description, and up to %d SEO-friendly tags.`

// MetadataPromptInput is the context handed to the model.
type MetadataPromptInput struct {
	FileName           string
	Description        string
	DefaultTitle       string
	DefaultDescription string
	DefaultTags        []string
}

// BuildMetadataPrompt renders the user prompt for metadata generation.
func BuildMetadataPrompt(in MetadataPromptInput) string {
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		fileName = "untitled.mp4"
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = "No description provided."
	}

	tags := strings.Join(in.DefaultTags, ", ")
	if tags == "" {
		tags = "None"
	}

	return fmt.Sprintf(metadataUserTemplate,
		fileName, description, in.DefaultTitle, in.DefaultDescription, tags, MaxTags)
}
