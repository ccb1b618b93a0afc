// Package remote holds clients for the hosted backend the sync layer replays
// against. The backend performs its own authorization and is idempotent for
// update and delete on a given id; the core only consumes this interface and
// never reimplements backend behavior.
package remote

import (
	"context"
	"encoding/json"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// Backend is the remote data collaborator consumed by the sync coordinator
// and the entity facades.
type Backend interface {
	// FetchAll downloads the full remote snapshot of one entity type.
	FetchAll(ctx context.Context, storeName string) ([]domain.RawRecord, error)

	// Create stores a new record remotely.
	Create(ctx context.Context, storeName string, rec domain.RawRecord) error

	// Update replaces the record with a full snapshot. Idempotent by id.
	Update(ctx context.Context, storeName, id string, data json.RawMessage) error

	// Delete removes the record. Idempotent; deleting an absent id is not an
	// error.
	Delete(ctx context.Context, storeName, id string) error
}
