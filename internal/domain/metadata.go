package domain

// MetadataSource tells where a title/description/tags triple came from.
type MetadataSource string

const (
	MetadataSourceAI       MetadataSource = "ai"
	MetadataSourceTemplate MetadataSource = "template"
)

// MetadataResult is the publishing metadata for one upload.
type MetadataResult struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags,omitempty"`
	Source      MetadataSource `json:"source"`
}
