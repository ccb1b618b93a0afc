package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tradepost-hq/tradepost/internal/repository"
)

type syncState struct {
	db *sql.DB
}

// NewSyncState creates the SQLite-backed sync metadata record. The table holds
// exactly one row, seeded by the schema migration.
func NewSyncState(db *sql.DB) repository.SyncState {
	return &syncState{db: db}
}

// LastSyncTime returns the time of the last successful bulk sync. A stored
// zero means no sync has completed and the zero time is returned.
func (s *syncState) LastSyncTime(ctx context.Context) (time.Time, error) {
	var millis int64
	err := s.db.QueryRowContext(ctx, `SELECT last_sync_time FROM sync_state WHERE id = 1`).Scan(&millis)
	if err != nil {
		return time.Time{}, storeErr(err)
	}
	if millis == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(millis).UTC(), nil
}

// SetLastSyncTime records a successful bulk sync.
func (s *syncState) SetLastSyncTime(ctx context.Context, t time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sync_state SET last_sync_time = ? WHERE id = 1`, t.UnixMilli()); err != nil {
		return storeErr(err)
	}
	return nil
}

// Reset clears the sync metadata on logout.
func (s *syncState) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sync_state SET last_sync_time = 0, pending_count = 0 WHERE id = 1`); err != nil {
		return storeErr(err)
	}
	return nil
}
