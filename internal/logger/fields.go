package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// ============================================
// Tracing Fields (Context level)
// Propagated through the call chain
// ============================================

const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldRunID is the upload run ID (UUID)
	FieldRunID = "run_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldSource is the candidate source identifier (drive, bucket)
	FieldSource = "source"

	// FieldTrigger is how the run was started (manual, scheduled)
	FieldTrigger = "trigger"
)

// ============================================
// Domain Fields
// ============================================

const (
	// FieldFileID is the source file identifier
	FieldFileID = "file_id"

	// FieldVideoID is the uploaded video identifier
	FieldVideoID = "video_id"
)

// ============================================
// Metric Fields (Entry level)
// Used for aggregation and alerting
// ============================================

const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
