package domain

import "time"

// CandidateFile is one unprocessed video in the candidate source.
// It is owned by the source; a run only reads it.
type CandidateFile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	MimeType    string     `json:"mimeType,omitempty"`
	CreatedTime *time.Time `json:"createdTime,omitempty"`
	Size        *int64     `json:"size,omitempty"`
}

// ProcessedMark is written onto a source file after its upload.
type ProcessedMark struct {
	VideoID     string
	ProcessedAt time.Time
}

// Keys of the processed marker as stored on the source file.
const (
	MarkKeyUploaded   = "uploaded"
	MarkKeyVideoID    = "youtubeVideoId"
	MarkKeyUploadedAt = "uploadedAt"
)

// Attributes renders the mark as the key/value set stored on the file.
func (m ProcessedMark) Attributes() map[string]string {
	return map[string]string{
		MarkKeyUploaded:   "true",
		MarkKeyVideoID:    m.VideoID,
		MarkKeyUploadedAt: m.ProcessedAt.UTC().Format(time.RFC3339),
	}
}
