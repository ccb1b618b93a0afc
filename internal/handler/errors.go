package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInvalidRequest   = "Invalid request body"

	// URL parameter error messages
	ErrMsgMissingIDParam = "Missing id path parameter"

	// Entity operation error messages
	ErrMsgSaveFailed   = "Failed to save record"
	ErrMsgListFailed   = "Failed to list records"
	ErrMsgGetFailed    = "Failed to get record"
	ErrMsgDeleteFailed = "Failed to delete record"

	// Sync operation error messages
	ErrMsgStatusFailed  = "Failed to read sync status"
	ErrMsgDrainFailed   = "Failed to drain mutation queue"
	ErrMsgBulkFailed    = "Failed to run bulk sync"
	ErrMsgPendingFailed = "Failed to list pending mutations"
	ErrMsgLogoutFailed  = "Failed to clear local state"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request body"
	LogMsgPayloadRejected = "Request payload failed schema validation"
)
