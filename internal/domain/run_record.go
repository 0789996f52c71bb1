package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// LogEntries stores a run's log sequence as JSON text.
type LogEntries []LogEntry

// Value implements the driver.Valuer interface for database serialization.
func (l LogEntries) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value, []byte or string.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (l *LogEntries) Scan(value interface{}) error {
	if value == nil {
		*l = LogEntries{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan LogEntries")
	}
	return json.Unmarshal(raw, l)
}

// RunRecord is one row of run history.
type RunRecord struct {
	ID             string         `gorm:"type:text;primaryKey" json:"id"`
	Manual         bool           `gorm:"default:false" json:"manual"`
	Status         RunStatus      `gorm:"type:text;not null;index" json:"status"`
	Reason         string         `gorm:"type:text" json:"reason,omitempty"`
	SourceFileID   string         `gorm:"type:text;index" json:"sourceFileId,omitempty"`
	VideoID        string         `gorm:"type:text" json:"videoId,omitempty"`
	Title          string         `gorm:"type:text" json:"title,omitempty"`
	MetadataSource MetadataSource `gorm:"type:text" json:"metadataSource,omitempty"`
	Logs           LogEntries     `gorm:"type:text" json:"logs"`
	StartedAt      time.Time      `gorm:"index" json:"startedAt"`
	FinishedAt     time.Time      `json:"finishedAt"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// TableName returns the database table name for RunRecord.
func (RunRecord) TableName() string {
	return "upload_runs"
}

// NewRunRecord flattens a RunResult into a history row.
func NewRunRecord(id string, manual bool, result RunResult, startedAt, finishedAt time.Time) *RunRecord {
	record := &RunRecord{
		ID:         id,
		Manual:     manual,
		Status:     result.Status(),
		Logs:       LogEntries(result.RunLogs()),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}

	switch r := result.(type) {
	case *Uploaded:
		record.SourceFileID = r.SourceFileID
		record.VideoID = r.VideoID
		record.Title = r.Title
		record.MetadataSource = r.MetadataSource
	case *Skipped:
		record.Reason = r.Reason
	}

	return record
}
