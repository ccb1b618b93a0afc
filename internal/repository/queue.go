package repository

import (
	"context"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// MutationQueue is the append-only durable log of pending write operations
// not yet confirmed by the remote backend.
//
// Ordering invariant: mutations for the same entity id must never be replayed
// out of the order they were enqueued. DequeueAll returns entries strictly in
// enqueue order (ascending timestamp, insertion order on ties).
type MutationQueue interface {
	// Enqueue assigns a fresh id, the current timestamp and retryCount=0,
	// persists the mutation and updates the cached pending count.
	Enqueue(ctx context.Context, input domain.MutationInput) (domain.Mutation, error)

	// DequeueAll returns all pending mutations in replay order. This is a
	// read, not a destructive pop; callers remove entries after successful
	// replay.
	DequeueAll(ctx context.Context) ([]domain.Mutation, error)

	// Remove deletes one entry after successful replay and updates the cached
	// pending count. Returns domain.ErrMutationNotFound for unknown ids.
	Remove(ctx context.Context, mutationID string) error

	// RecordFailure increments retryCount and stores the failure reason. The
	// entry stays queued; there is no max-retry eviction.
	RecordFailure(ctx context.Context, mutationID, errorMessage string) error

	// PendingCount returns the cached count of outstanding mutations.
	PendingCount(ctx context.Context) (int, error)

	// Clear removes every pending mutation. Used on logout.
	Clear(ctx context.Context) error
}
