package syncer

// Log messages
const (
	LogMsgDrainStarted        = "Queue drain started"
	LogMsgDrainCompleted      = "Queue drain completed"
	LogMsgDrainSkippedOffline = "Queue drain skipped, backend offline"
	LogMsgReplayFailed        = "Mutation replay failed"
	LogMsgMutationHeldBack    = "Mutation held back behind failed replay"
	LogMsgBulkSyncStarted     = "Bulk sync started"
	LogMsgBulkSyncCompleted   = "Bulk sync completed"
	LogMsgBulkSyncStoreFailed = "Bulk sync failed for store"
	LogMsgLocalStateCleared   = "Local state cleared"
	LogMsgEventPublishFailed  = "Failed to publish sync event"
	LogMsgRemoveFailed        = "Failed to remove replayed mutation"
	LogMsgRecordFailureFailed = "Failed to record replay failure"
	LogMsgReconnectQueued     = "Connectivity restored, reconnect sync queued"
)

// Error message constants
const (
	ErrMsgDrainQueue        = "failed to read pending mutations"
	ErrMsgBulkSyncFetch     = "failed to fetch remote records"
	ErrMsgBulkSyncStore     = "failed to store downloaded records"
	ErrMsgClearEntityStore  = "failed to clear entity store"
	ErrMsgClearQueue        = "failed to clear mutation queue"
	ErrMsgResetSyncState    = "failed to reset sync state"
	ErrMsgReadSyncState     = "failed to read sync state"
	ErrMsgSetLastSync       = "failed to record last sync time"
	ErrMsgUnsupportedType   = "unsupported mutation type"
	ErrMsgPendingCount      = "failed to read pending count"
)
