package repository

import (
	"context"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// EntityStore is the durable per-entity-type table used as a read cache and
// as the write-ahead staging area while offline. Implementations live under
// internal/database. Last write wins per (storeName, id).
type EntityStore interface {
	// GetAll returns every record in the named store. No ordering guarantee.
	GetAll(ctx context.Context, storeName string) ([]domain.RawRecord, error)

	// GetByID returns the record for id, or domain.ErrRecordNotFound if absent.
	// Absence is a valid outcome, not a store failure.
	GetByID(ctx context.Context, storeName, id string) (domain.RawRecord, error)

	// Put upserts a record by its id. Idempotent.
	Put(ctx context.Context, storeName string, rec domain.RawRecord) error

	// Delete removes the record if present. Idempotent; no error if absent.
	Delete(ctx context.Context, storeName, id string) error

	// BulkPut replaces/creates many records in one transaction. Used after a
	// full remote fetch.
	BulkPut(ctx context.Context, storeName string, recs []domain.RawRecord) error

	// Clear removes all records in the named store. Used on logout.
	Clear(ctx context.Context, storeName string) error
}
