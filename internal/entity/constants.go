package entity

import "time"

// Cache defaults
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgSavedOnline        = "Record saved to remote"
	LogMsgSavedOffline       = "Record saved locally, mutation queued"
	LogMsgDeletedOnline      = "Record deleted from remote"
	LogMsgDeletedOffline     = "Record deleted locally, mutation queued"
	LogMsgMutationQueued     = "Mutation queued for replay"
	LogMsgEventPublishFailed = "Failed to publish mutation event"
	LogMsgCachePurged        = "Read cache purged"
)

// Error message constants
const (
	ErrMsgValidate       = "record failed validation"
	ErrMsgMarshal        = "failed to encode record"
	ErrMsgUnmarshal      = "failed to decode stored record"
	ErrMsgLocalPut       = "failed to write local record"
	ErrMsgLocalDelete    = "failed to delete local record"
	ErrMsgRemoteSave     = "remote save failed"
	ErrMsgRemoteDelete   = "remote delete failed"
	ErrMsgEnqueue        = "failed to queue mutation"
	ErrMsgExistenceCheck = "failed to check for existing record"
)
