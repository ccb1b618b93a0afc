package event

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Log message constants
const (
	LogMsgHandlerErrorFormat = "%d handler(s) failed for event %s: %v"
)
