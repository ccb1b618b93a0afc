package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// PostgresBackend talks straight to the hosted relational backend for
// deployments where the device can reach the database. Writes upsert by id,
// which keeps replaying a create as harmless as replaying an update.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend creates a backend over an existing connection pool.
func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

// NewPool connects to the hosted backend and verifies the connection.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	return pool, nil
}

// EnsureSchema creates the records table if it does not exist. Hosted
// deployments manage this with their own migrations; tests and self-hosted
// setups call it at start.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS records (
			store_name TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (store_name, id)
		)
	`
	if _, err := b.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	return nil
}

// FetchAll downloads the full remote snapshot of one entity type.
func (b *PostgresBackend) FetchAll(ctx context.Context, storeName string) ([]domain.RawRecord, error) {
	query := `SELECT id, data FROM records WHERE store_name = $1`

	rows, err := b.pool.Query(ctx, query, storeName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	defer rows.Close()

	var records []domain.RawRecord
	for rows.Next() {
		var rec domain.RawRecord
		var data []byte
		if err := rows.Scan(&rec.ID, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
		}
		rec.Data = data
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}

	return records, nil
}

// Create stores a new record. Implemented as an upsert so a replayed create
// after a crash between remote write and queue removal cannot duplicate.
func (b *PostgresBackend) Create(ctx context.Context, storeName string, rec domain.RawRecord) error {
	return b.upsert(ctx, storeName, rec.ID, rec.Data)
}

// Update replaces the record with a full snapshot.
func (b *PostgresBackend) Update(ctx context.Context, storeName, id string, data json.RawMessage) error {
	return b.upsert(ctx, storeName, id, data)
}

// Delete removes the record. Deleting an absent id is not an error.
func (b *PostgresBackend) Delete(ctx context.Context, storeName, id string) error {
	query := `DELETE FROM records WHERE store_name = $1 AND id = $2`

	if _, err := b.pool.Exec(ctx, query, storeName, id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	return nil
}

func (b *PostgresBackend) upsert(ctx context.Context, storeName, id string, data json.RawMessage) error {
	query := `
		INSERT INTO records (store_name, id, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_name, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := b.pool.Exec(ctx, query, storeName, id, []byte(data)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	return nil
}
