package remote

import "time"

// Backend kinds selectable via configuration
const (
	KindHTTP     = "http"
	KindPostgres = "postgres"
)

// HTTP client defaults
const (
	DefaultTimeout = 30 * time.Second

	HeaderAPIKey      = "X-API-Key"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	APIBasePath = "/api/v1"
)

// Error message constants
const (
	ErrMsgUnexpectedStatus = "unexpected status"
	ErrMsgRequestFailed    = "request failed"
	ErrMsgDecodeResponse   = "failed to decode response"
)
