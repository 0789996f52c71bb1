package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRunResult_JSONDiscriminator(t *testing.T) {
	tests := []struct {
		name   string
		result RunResult
		status string
	}{
		{
			name: "uploaded",
			result: &Uploaded{
				VideoID:        "vid-1",
				SourceFileID:   "file-1",
				Title:          "T",
				MetadataSource: MetadataSourceAI,
			},
			status: "uploaded",
		},
		{
			name:   "skipped",
			result: &Skipped{Reason: "No pending videos available"},
			status: "skipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var decoded map[string]interface{}
			if err := json.Unmarshal(raw, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if decoded["status"] != tt.status {
				t.Errorf("expected status %q, got %v (%s)", tt.status, decoded["status"], raw)
			}
		})
	}
}

func TestUploaded_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(&Uploaded{VideoID: "v", SourceFileID: "f", MetadataSource: MetadataSourceTemplate})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	_ = json.Unmarshal(raw, &decoded)
	for _, key := range []string{"videoId", "sourceFileId", "metadataSource", "logs"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in %s", key, raw)
		}
	}
}

func TestLogEntries_ScanValue(t *testing.T) {
	entries := LogEntries{
		{Level: LogLevelInfo, Message: "start", Timestamp: "2025-01-05T10:00:00.000Z"},
		{Level: LogLevelError, Message: "boom", Timestamp: "2025-01-05T10:00:01.000Z", Details: map[string]interface{}{"error": "x"}},
	}

	value, err := entries.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var scanned LogEntries
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(scanned) != 2 || scanned[1].Details["error"] != "x" {
		t.Errorf("unexpected scanned entries: %+v", scanned)
	}

	var empty LogEntries
	if err := empty.Scan(nil); err != nil || empty == nil {
		t.Errorf("expected empty non-nil entries, got %v, %v", empty, err)
	}
	if err := empty.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}

func TestNewRunRecord(t *testing.T) {
	started := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	finished := started.Add(3 * time.Second)

	uploaded := NewRunRecord("run-1", true, &Uploaded{
		VideoID:        "vid",
		SourceFileID:   "file",
		Title:          "Title",
		MetadataSource: MetadataSourceTemplate,
	}, started, finished)
	if uploaded.Status != RunStatusUploaded || uploaded.VideoID != "vid" || !uploaded.Manual {
		t.Errorf("unexpected uploaded record: %+v", uploaded)
	}

	skipped := NewRunRecord("run-2", false, &Skipped{Reason: "nope"}, started, finished)
	if skipped.Status != RunStatusSkipped || skipped.Reason != "nope" || skipped.VideoID != "" {
		t.Errorf("unexpected skipped record: %+v", skipped)
	}
}

func TestProcessedMark_Attributes(t *testing.T) {
	at := time.Date(2025, 1, 5, 10, 0, 0, 0, time.FixedZone("x", 3600))
	attrs := ProcessedMark{VideoID: "vid", ProcessedAt: at}.Attributes()

	if attrs[MarkKeyUploaded] != "true" || attrs[MarkKeyVideoID] != "vid" {
		t.Errorf("unexpected attributes: %v", attrs)
	}
	if attrs[MarkKeyUploadedAt] != "2025-01-05T09:00:00Z" {
		t.Errorf("expected UTC timestamp, got %q", attrs[MarkKeyUploadedAt])
	}
}
