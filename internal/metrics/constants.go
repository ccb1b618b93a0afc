package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Sync metric names
const (
	MetricNamePendingMutations       = "sync_pending_mutations"
	MetricNameMutationsReplayed      = "sync_mutations_replayed_total"
	MetricNameMutationReplayFailures = "sync_mutation_replay_failures_total"
	MetricNameMutationsSkipped       = "sync_mutations_skipped_total"
	MetricNameDrainDuration          = "sync_drain_duration_seconds"
	MetricNameBulkSyncDuration       = "sync_bulk_duration_seconds"
	MetricNameBulkSyncRecords        = "sync_bulk_records_total"
	MetricNameConnectivityState      = "sync_connectivity_online"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Sync metric help text
const (
	HelpTextPendingMutations       = "Current number of queued mutations awaiting replay"
	HelpTextMutationsReplayed      = "Total number of mutations replayed successfully"
	HelpTextMutationReplayFailures = "Total number of failed mutation replays"
	HelpTextMutationsSkipped       = "Total number of mutations held back behind a failed replay"
	HelpTextDrainDuration          = "Queue drain latency in seconds"
	HelpTextBulkSyncDuration       = "Full download latency in seconds"
	HelpTextBulkSyncRecords        = "Total number of records downloaded by bulk sync"
	HelpTextConnectivityState      = "1 when the remote backend is reachable, 0 when offline"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelStore  = "store"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SyncLatencyBuckets covers drain and bulk-sync cycles, which can take
// seconds on a slow link.
var SyncLatencyBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
