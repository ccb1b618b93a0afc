// Package syncer coordinates the offline mutation queue with the remote
// backend: it drains queued writes in order when connectivity returns and
// refreshes the local entity store from full remote snapshots.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tradepost-hq/tradepost/internal/connectivity"
	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/event"
	"github.com/tradepost-hq/tradepost/internal/logger"
	"github.com/tradepost-hq/tradepost/internal/metrics"
	"github.com/tradepost-hq/tradepost/internal/remote"
	"github.com/tradepost-hq/tradepost/internal/repository"
)

// Service is the sync coordinator consumed by handlers and background jobs.
type Service interface {
	// Drain replays all pending mutations against the remote backend in
	// enqueue order. Mutations for an entity whose earlier replay failed in
	// this cycle are held back, not failed. Returns domain.ErrOffline when
	// the backend is unreachable.
	Drain(ctx context.Context) (domain.DrainResult, error)

	// BulkSync downloads the full remote snapshot of every entity type and
	// replaces the local entity store contents. Returns domain.ErrOffline
	// when the backend is unreachable.
	BulkSync(ctx context.Context) (domain.BulkSyncResult, error)

	// Status reports last sync time, pending count and connectivity.
	Status(ctx context.Context) (domain.SyncStatus, error)

	// Pending lists all queued mutations in replay order.
	Pending(ctx context.Context) ([]domain.Mutation, error)

	// ClearLocal wipes the entity store, the mutation queue and the sync
	// metadata. Used on logout. Queued mutations are discarded, not replayed.
	ClearLocal(ctx context.Context) error
}

type service struct {
	store    repository.EntityStore
	queue    repository.MutationQueue
	state    repository.SyncState
	backend  remote.Backend
	monitor  connectivity.Monitor
	eventBus event.Bus

	drainMu sync.Mutex
}

// NewService creates a new sync coordinator.
func NewService(store repository.EntityStore, queue repository.MutationQueue, state repository.SyncState, backend remote.Backend, monitor connectivity.Monitor, eventBus event.Bus) Service {
	return &service{
		store:    store,
		queue:    queue,
		state:    state,
		backend:  backend,
		monitor:  monitor,
		eventBus: eventBus,
	}
}

func (s *service) Drain(ctx context.Context) (domain.DrainResult, error) {
	log := logger.FromContext(ctx)

	if !s.monitor.IsOnline() {
		log.Debug(LogMsgDrainSkippedOffline)
		return domain.DrainResult{}, domain.ErrOffline
	}

	// One drain at a time; a second caller waits for the first to finish
	// and then drains whatever is still queued.
	s.drainMu.Lock()
	defer s.drainMu.Unlock()

	start := time.Now()

	pending, err := s.queue.DequeueAll(ctx)
	if err != nil {
		return domain.DrainResult{}, fmt.Errorf("%s: %w", ErrMsgDrainQueue, err)
	}

	log.Info(LogMsgDrainStarted, "pending", len(pending))

	// Mutations for different entity types are independent, so each store's
	// slice replays on its own goroutine. Within a store order is preserved.
	byStore := groupByStore(pending)

	var (
		mu     sync.Mutex
		result domain.DrainResult
		wg     sync.WaitGroup
	)
	for storeName, mutations := range byStore {
		wg.Add(1)
		go func(storeName string, mutations []domain.Mutation) {
			defer wg.Done()
			r := s.drainStore(ctx, storeName, mutations)
			mu.Lock()
			result.Replayed += r.Replayed
			result.Failed += r.Failed
			result.Skipped += r.Skipped
			mu.Unlock()
		}(storeName, mutations)
	}
	wg.Wait()

	metrics.DrainDuration.Observe(time.Since(start).Seconds())
	s.refreshPendingGauge(ctx)

	log.Info(LogMsgDrainCompleted,
		"replayed", result.Replayed,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration", time.Since(start))

	s.publish(ctx, event.Event{
		Version: event.SchemaVersion,
		Type:    event.SyncDrainCompleted,
		Payload: event.DrainCompletedPayloadV1{
			Replayed: result.Replayed,
			Failed:   result.Failed,
			Skipped:  result.Skipped,
		},
	})

	return result, nil
}

// drainStore replays one store's mutations sequentially. A failed replay
// blocks every later mutation for the same entity id in this cycle so that
// same-entity order is never violated; blocked entries stay queued.
func (s *service) drainStore(ctx context.Context, storeName string, mutations []domain.Mutation) domain.DrainResult {
	log := logger.FromContext(ctx)

	var result domain.DrainResult
	blocked := make(map[string]bool)

	for _, m := range mutations {
		if blocked[m.EntityID] {
			result.Skipped++
			metrics.MutationsSkipped.WithLabelValues(storeName).Inc()
			log.Debug(LogMsgMutationHeldBack, "mutation_id", m.ID, "entity_id", m.EntityID)
			continue
		}

		if err := s.replay(ctx, m); err != nil {
			blocked[m.EntityID] = true
			result.Failed++
			metrics.MutationReplayFailures.WithLabelValues(storeName).Inc()
			log.Warn(LogMsgReplayFailed,
				"mutation_id", m.ID,
				"store", storeName,
				"entity_id", m.EntityID,
				"retry_count", m.RetryCount,
				"error", err)
			if recErr := s.queue.RecordFailure(ctx, m.ID, err.Error()); recErr != nil {
				log.Error(LogMsgRecordFailureFailed, "mutation_id", m.ID, "error", recErr)
			}
			continue
		}

		if err := s.queue.Remove(ctx, m.ID); err != nil {
			// The replay landed; leaving the entry queued means a duplicate
			// replay next cycle, which the backend absorbs idempotently.
			log.Error(LogMsgRemoveFailed, "mutation_id", m.ID, "error", err)
		}
		result.Replayed++
		metrics.MutationsReplayed.WithLabelValues(storeName).Inc()
	}

	return result
}

func (s *service) replay(ctx context.Context, m domain.Mutation) error {
	switch m.Type {
	case domain.MutationCreate:
		return s.backend.Create(ctx, m.StoreName, domain.RawRecord{ID: m.EntityID, Data: m.Data})
	case domain.MutationUpdate:
		return s.backend.Update(ctx, m.StoreName, m.EntityID, m.Data)
	case domain.MutationDelete:
		return s.backend.Delete(ctx, m.StoreName, m.EntityID)
	default:
		return fmt.Errorf("%s: %s", ErrMsgUnsupportedType, m.Type)
	}
}

func (s *service) BulkSync(ctx context.Context) (domain.BulkSyncResult, error) {
	log := logger.FromContext(ctx)

	if !s.monitor.IsOnline() {
		return domain.BulkSyncResult{}, domain.ErrOffline
	}

	start := time.Now()
	log.Info(LogMsgBulkSyncStarted)

	var result domain.BulkSyncResult
	for _, storeName := range domain.StoreNames {
		recs, err := s.backend.FetchAll(ctx, storeName)
		if err != nil {
			log.Error(LogMsgBulkSyncStoreFailed, "store", storeName, "error", err)
			return domain.BulkSyncResult{}, fmt.Errorf("%s %q: %w", ErrMsgBulkSyncFetch, storeName, err)
		}

		if err := s.store.BulkPut(ctx, storeName, recs); err != nil {
			return domain.BulkSyncResult{}, fmt.Errorf("%s %q: %w", ErrMsgBulkSyncStore, storeName, err)
		}

		result.Stores++
		result.Records += len(recs)
		metrics.BulkSyncRecords.WithLabelValues(storeName).Add(float64(len(recs)))
	}

	if err := s.state.SetLastSyncTime(ctx, time.Now().UTC()); err != nil {
		return result, fmt.Errorf("%s: %w", ErrMsgSetLastSync, err)
	}

	metrics.BulkSyncDuration.Observe(time.Since(start).Seconds())

	log.Info(LogMsgBulkSyncCompleted,
		"stores", result.Stores,
		"records", result.Records,
		"duration", time.Since(start))

	s.publish(ctx, event.Event{
		Version: event.SchemaVersion,
		Type:    event.SyncBulkCompleted,
		Payload: event.BulkSyncCompletedPayloadV1{
			Stores:  result.Stores,
			Records: result.Records,
		},
	})

	return result, nil
}

func (s *service) Status(ctx context.Context) (domain.SyncStatus, error) {
	lastSync, err := s.state.LastSyncTime(ctx)
	if err != nil {
		return domain.SyncStatus{}, fmt.Errorf("%s: %w", ErrMsgReadSyncState, err)
	}

	count, err := s.queue.PendingCount(ctx)
	if err != nil {
		return domain.SyncStatus{}, fmt.Errorf("%s: %w", ErrMsgPendingCount, err)
	}

	return domain.SyncStatus{
		LastSyncTime: lastSync,
		PendingCount: count,
		IsOnline:     s.monitor.IsOnline(),
	}, nil
}

func (s *service) Pending(ctx context.Context) ([]domain.Mutation, error) {
	return s.queue.DequeueAll(ctx)
}

func (s *service) ClearLocal(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, storeName := range domain.StoreNames {
		if err := s.store.Clear(ctx, storeName); err != nil {
			return fmt.Errorf("%s %q: %w", ErrMsgClearEntityStore, storeName, err)
		}
	}

	if err := s.queue.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgClearQueue, err)
	}

	if err := s.state.Reset(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgResetSyncState, err)
	}

	log.Info(LogMsgLocalStateCleared)

	s.publish(ctx, event.Event{
		Version: event.SchemaVersion,
		Type:    event.SyncLocalStateCleared,
	})

	return nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Error(LogMsgEventPublishFailed, "type", evt.Type, "error", err)
	}
}

func (s *service) refreshPendingGauge(ctx context.Context) {
	if count, err := s.queue.PendingCount(ctx); err == nil {
		metrics.PendingMutations.Set(float64(count))
	}
}

// groupByStore splits mutations per entity type, preserving replay order
// within each slice.
func groupByStore(mutations []domain.Mutation) map[string][]domain.Mutation {
	byStore := make(map[string][]domain.Mutation)
	for _, m := range mutations {
		byStore[m.StoreName] = append(byStore[m.StoreName], m)
	}
	return byStore
}
