package repository

import (
	"context"
	"time"
)

// SyncState persists the small sync metadata record: the epoch of the last
// successful full download and the cached pending-mutation count. The pending
// count is maintained by the MutationQueue implementation; both usually share
// the same database handle.
type SyncState interface {
	// LastSyncTime returns the time of the last successful bulk sync, or the
	// zero time if none has completed yet.
	LastSyncTime(ctx context.Context) (time.Time, error)

	// SetLastSyncTime records a successful bulk sync.
	SetLastSyncTime(ctx context.Context, t time.Time) error

	// Reset clears all sync metadata. Used on logout.
	Reset(ctx context.Context) error
}
