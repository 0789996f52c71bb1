package domain

import "encoding/json"

// RunStatus discriminates the two RunResult variants.
type RunStatus string

const (
	RunStatusUploaded RunStatus = "uploaded"
	RunStatusSkipped  RunStatus = "skipped"
)

// RunResult is the outcome of one upload run: either *Uploaded or *Skipped.
// The interface is sealed; switch on the concrete type to handle both.
type RunResult interface {
	Status() RunStatus
	RunLogs() []LogEntry
	isRunResult()
}

// Uploaded is returned when a candidate was transferred.
type Uploaded struct {
	VideoID        string         `json:"videoId,omitempty"`
	SourceFileID   string         `json:"sourceFileId"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Tags           []string       `json:"tags,omitempty"`
	MetadataSource MetadataSource `json:"metadataSource"`
	Logs           []LogEntry     `json:"logs"`
}

// Skipped is returned when nothing was uploaded.
type Skipped struct {
	Reason string     `json:"reason"`
	Logs   []LogEntry `json:"logs"`
}

func (*Uploaded) Status() RunStatus { return RunStatusUploaded }
func (*Skipped) Status() RunStatus  { return RunStatusSkipped }

func (u *Uploaded) RunLogs() []LogEntry { return u.Logs }
func (s *Skipped) RunLogs() []LogEntry  { return s.Logs }

func (*Uploaded) isRunResult() {}
func (*Skipped) isRunResult()  {}

// MarshalJSON adds the "status" discriminator.
func (u *Uploaded) MarshalJSON() ([]byte, error) {
	type plain Uploaded
	return json.Marshal(struct {
		Status RunStatus `json:"status"`
		*plain
	}{RunStatusUploaded, (*plain)(u)})
}

// MarshalJSON adds the "status" discriminator.
func (s *Skipped) MarshalJSON() ([]byte, error) {
	type plain Skipped
	return json.Marshal(struct {
		Status RunStatus `json:"status"`
		*plain
	}{RunStatusSkipped, (*plain)(s)})
}
