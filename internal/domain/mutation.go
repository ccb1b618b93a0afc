package domain

import (
	"encoding/json"
	"time"
)

// MutationType identifies the kind of pending write operation.
type MutationType string

const (
	MutationCreate MutationType = "create"
	MutationUpdate MutationType = "update"
	MutationDelete MutationType = "delete"
)

// Valid reports whether t is one of the known mutation types.
func (t MutationType) Valid() bool {
	switch t {
	case MutationCreate, MutationUpdate, MutationDelete:
		return true
	}
	return false
}

// MutationInput is the caller-supplied part of a pending mutation. The queue
// assigns the id, timestamp and retry bookkeeping on enqueue.
type MutationInput struct {
	Type      MutationType    `json:"type"`
	StoreName string          `json:"store_name"`
	EntityID  string          `json:"entity_id"`
	Data      json.RawMessage `json:"data,omitempty"` // full snapshot, nil for deletes
}

// Mutation is one queued, not-yet-confirmed write operation awaiting replay
// against the remote backend. Immutable once created except for RetryCount
// and LastError, which are updated on failed replay.
type Mutation struct {
	ID         string          `json:"id"` // queue key, not the entity id
	Timestamp  time.Time       `json:"timestamp"`
	Type       MutationType    `json:"type"`
	StoreName  string          `json:"store_name"`
	EntityID   string          `json:"entity_id"`
	Data       json.RawMessage `json:"data,omitempty"`
	RetryCount int             `json:"retry_count"`
	LastError  string          `json:"last_error,omitempty"`
}

// SyncStatus is the read-only view of sync state exposed to callers.
type SyncStatus struct {
	LastSyncTime time.Time `json:"last_sync_time"`
	PendingCount int       `json:"pending_count"`
	IsOnline     bool      `json:"is_online"`
}

// DrainResult summarises one queue drain cycle.
type DrainResult struct {
	Replayed int `json:"replayed"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"` // held back to preserve same-entity ordering
}

// BulkSyncResult summarises one full download cycle.
type BulkSyncResult struct {
	Stores  int `json:"stores"`
	Records int `json:"records"`
}
