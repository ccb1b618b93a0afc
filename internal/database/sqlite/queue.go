package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/repository"
)

type mutationQueue struct {
	db *sql.DB
}

// NewMutationQueue creates a SQLite-backed pending-mutation queue. The cached
// pending count in sync_state is maintained in the same transaction as every
// queue change so the two can never drift.
func NewMutationQueue(db *sql.DB) repository.MutationQueue {
	return &mutationQueue{db: db}
}

// Enqueue persists a new pending mutation with a fresh id and timestamp.
func (q *mutationQueue) Enqueue(ctx context.Context, input domain.MutationInput) (domain.Mutation, error) {
	if err := validateInput(input); err != nil {
		return domain.Mutation{}, err
	}

	mutation := domain.Mutation{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Type:      input.Type,
		StoreName: input.StoreName,
		EntityID:  input.EntityID,
		Data:      input.Data,
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Mutation{}, storeErr(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO pending_mutations (id, timestamp, type, store_name, entity_id, data, retry_count)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`

	var data []byte
	if mutation.Data != nil {
		data = []byte(mutation.Data)
	}

	if _, err := tx.ExecContext(ctx, query,
		mutation.ID, mutation.Timestamp.UnixNano(), string(mutation.Type),
		mutation.StoreName, mutation.EntityID, data); err != nil {
		return domain.Mutation{}, storeErr(err)
	}

	if err := refreshPendingCount(ctx, tx); err != nil {
		return domain.Mutation{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Mutation{}, storeErr(err)
	}

	return mutation, nil
}

// DequeueAll returns all pending mutations in replay order: ascending
// timestamp, insertion order on ties.
func (q *mutationQueue) DequeueAll(ctx context.Context) ([]domain.Mutation, error) {
	query := `
		SELECT id, timestamp, type, store_name, entity_id, data, retry_count, COALESCE(last_error, '')
		FROM pending_mutations
		ORDER BY timestamp ASC, seq ASC
	`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var mutations []domain.Mutation
	for rows.Next() {
		var m domain.Mutation
		var ts int64
		var typ string
		var data []byte
		if err := rows.Scan(&m.ID, &ts, &typ, &m.StoreName, &m.EntityID, &data, &m.RetryCount, &m.LastError); err != nil {
			return nil, storeErr(err)
		}
		m.Timestamp = time.Unix(0, ts).UTC()
		m.Type = domain.MutationType(typ)
		if data != nil {
			m.Data = data
		}
		mutations = append(mutations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return mutations, nil
}

// Remove deletes one entry after successful replay.
func (q *mutationQueue) Remove(ctx context.Context, mutationID string) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM pending_mutations WHERE id = ?`, mutationID)
	if err != nil {
		return storeErr(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMutationNotFound, mutationID)
	}

	if err := refreshPendingCount(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeErr(err)
	}
	return nil
}

// RecordFailure increments the retry counter and stores the failure reason.
func (q *mutationQueue) RecordFailure(ctx context.Context, mutationID, errorMessage string) error {
	query := `
		UPDATE pending_mutations
		SET retry_count = retry_count + 1, last_error = ?
		WHERE id = ?
	`

	res, err := q.db.ExecContext(ctx, query, errorMessage, mutationID)
	if err != nil {
		return storeErr(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMutationNotFound, mutationID)
	}

	return nil
}

// PendingCount returns the cached count from sync_state.
func (q *mutationQueue) PendingCount(ctx context.Context) (int, error) {
	var count int
	err := q.db.QueryRowContext(ctx, `SELECT pending_count FROM sync_state WHERE id = 1`).Scan(&count)
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

// Clear removes every pending mutation and zeroes the cached count.
func (q *mutationQueue) Clear(ctx context.Context) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_mutations`); err != nil {
		return storeErr(err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE sync_state SET pending_count = 0 WHERE id = 1`); err != nil {
		return storeErr(err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr(err)
	}
	return nil
}

// refreshPendingCount recomputes the cached count inside the caller's
// transaction.
func refreshPendingCount(ctx context.Context, tx *sql.Tx) error {
	query := `
		UPDATE sync_state
		SET pending_count = (SELECT COUNT(*) FROM pending_mutations)
		WHERE id = 1
	`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return storeErr(err)
	}
	return nil
}

// validateInput rejects malformed mutations before they are persisted.
func validateInput(input domain.MutationInput) error {
	if !input.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidMutation, input.Type)
	}
	if err := checkStore(input.StoreName); err != nil {
		return err
	}
	if input.EntityID == "" {
		return fmt.Errorf("%w: missing entity id", domain.ErrInvalidMutation)
	}
	if input.Type != domain.MutationDelete && input.Data == nil {
		return fmt.Errorf("%w: %s requires a snapshot", domain.ErrInvalidMutation, input.Type)
	}
	if input.Type == domain.MutationDelete && input.Data != nil {
		return fmt.Errorf("%w: delete carries no snapshot", domain.ErrInvalidMutation)
	}
	return nil
}
