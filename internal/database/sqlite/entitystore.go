package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/repository"
)

type entityStore struct {
	db *sql.DB
}

// NewEntityStore creates a SQLite-backed local entity store.
func NewEntityStore(db *sql.DB) repository.EntityStore {
	return &entityStore{db: db}
}

// GetAll returns every record in the named store.
func (s *entityStore) GetAll(ctx context.Context, storeName string) ([]domain.RawRecord, error) {
	if err := checkStore(storeName); err != nil {
		return nil, err
	}

	query := `
		SELECT id, data
		FROM entity_records
		WHERE store_name = ?
	`

	rows, err := s.db.QueryContext(ctx, query, storeName)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var records []domain.RawRecord
	for rows.Next() {
		var rec domain.RawRecord
		var data []byte
		if err := rows.Scan(&rec.ID, &data); err != nil {
			return nil, storeErr(err)
		}
		rec.Data = data
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return records, nil
}

// GetByID returns the record for id, or domain.ErrRecordNotFound if absent.
func (s *entityStore) GetByID(ctx context.Context, storeName, id string) (domain.RawRecord, error) {
	if err := checkStore(storeName); err != nil {
		return domain.RawRecord{}, err
	}

	query := `
		SELECT id, data
		FROM entity_records
		WHERE store_name = ? AND id = ?
	`

	var rec domain.RawRecord
	var data []byte
	err := s.db.QueryRowContext(ctx, query, storeName, id).Scan(&rec.ID, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RawRecord{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domain.RawRecord{}, storeErr(err)
	}
	rec.Data = data

	return rec, nil
}

// Put upserts a record by id. Last write wins.
func (s *entityStore) Put(ctx context.Context, storeName string, rec domain.RawRecord) error {
	if err := checkStore(storeName); err != nil {
		return err
	}
	if rec.ID == "" {
		return domain.ErrMissingEntityID
	}

	query := `
		INSERT INTO entity_records (store_name, id, data, updated_at)
		VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT (store_name, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, storeName, rec.ID, []byte(rec.Data)); err != nil {
		return storeErr(err)
	}
	return nil
}

// Delete removes the record if present. No error if absent.
func (s *entityStore) Delete(ctx context.Context, storeName, id string) error {
	if err := checkStore(storeName); err != nil {
		return err
	}

	query := `DELETE FROM entity_records WHERE store_name = ? AND id = ?`

	if _, err := s.db.ExecContext(ctx, query, storeName, id); err != nil {
		return storeErr(err)
	}
	return nil
}

// BulkPut upserts many records in a single transaction so a mid-operation
// failure never leaves the store half-written.
func (s *entityStore) BulkPut(ctx context.Context, storeName string, recs []domain.RawRecord) error {
	if err := checkStore(storeName); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO entity_records (store_name, id, data, updated_at)
		VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT (store_name, id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return storeErr(err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec.ID == "" {
			return domain.ErrMissingEntityID
		}
		if _, err := stmt.ExecContext(ctx, storeName, rec.ID, []byte(rec.Data)); err != nil {
			return storeErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr(err)
	}
	return nil
}

// Clear removes every record in the named store.
func (s *entityStore) Clear(ctx context.Context, storeName string) error {
	if err := checkStore(storeName); err != nil {
		return err
	}

	query := `DELETE FROM entity_records WHERE store_name = ?`

	if _, err := s.db.ExecContext(ctx, query, storeName); err != nil {
		return storeErr(err)
	}
	return nil
}
