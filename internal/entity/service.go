// Package entity exposes one typed facade per entity type over the shared
// local store, mutation queue and remote backend. Facades are what handlers
// and callers use; they never touch the repositories directly.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tradepost-hq/tradepost/internal/concurrency"
	"github.com/tradepost-hq/tradepost/internal/connectivity"
	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/event"
	"github.com/tradepost-hq/tradepost/internal/logger"
	"github.com/tradepost-hq/tradepost/internal/remote"
	"github.com/tradepost-hq/tradepost/internal/repository"
)

// Service is the typed CRUD facade for one entity type.
//
// Writes go remote-first while online; while offline they apply locally and
// queue a mutation for later replay, so the caller always gets an immediate
// answer. Reads are local-only and served through a small TTL cache.
type Service[T domain.Record] interface {
	// Save creates or updates a record. A record without an id gets a fresh
	// UUID assigned before anything is persisted.
	Save(ctx context.Context, rec T) (T, error)

	// Get returns the local copy of one record.
	Get(ctx context.Context, id string) (T, error)

	// List returns all local records of this type.
	List(ctx context.Context) ([]T, error)

	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

type service[T domain.Record] struct {
	storeName string
	newRecord func() T
	store     repository.EntityStore
	queue     repository.MutationQueue
	backend   remote.Backend
	monitor   connectivity.Monitor
	eventBus  event.Bus
	validate  *validator.Validate
	cache     *expirable.LRU[string, T]
	locks     *concurrency.LockManager
}

// Deps bundles the shared collaborators every facade is built from.
type Deps struct {
	Store     repository.EntityStore
	Queue     repository.MutationQueue
	Backend   remote.Backend
	Monitor   connectivity.Monitor
	EventBus  event.Bus
	Validate  *validator.Validate
	CacheSize int
	CacheTTL  time.Duration
}

// NewService creates a facade for one entity type. newRecord must return a
// fresh zero value for decoding stored JSON into.
func NewService[T domain.Record](storeName string, newRecord func() T, deps Deps) Service[T] {
	size := deps.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	s := &service[T]{
		storeName: storeName,
		newRecord: newRecord,
		store:     deps.Store,
		queue:     deps.Queue,
		backend:   deps.Backend,
		monitor:   deps.Monitor,
		eventBus:  deps.EventBus,
		validate:  deps.Validate,
		cache:     expirable.NewLRU[string, T](size, nil, ttl),
		locks:     concurrency.NewLockManager(),
	}

	// A fresh snapshot download or a logout invalidates everything cached.
	if deps.EventBus != nil {
		deps.EventBus.Subscribe(event.SyncBulkCompleted, s.purgeCache)
		deps.EventBus.Subscribe(event.SyncLocalStateCleared, s.purgeCache)
	}

	return s
}

func (s *service[T]) Save(ctx context.Context, rec T) (T, error) {
	log := logger.FromContext(ctx)

	if rec.EntityID() == "" {
		rec.SetEntityID(uuid.NewString())
	}

	if s.validate != nil {
		if err := s.validate.Struct(rec); err != nil {
			var zero T
			return zero, fmt.Errorf("%s: %w: %w", ErrMsgValidate, domain.ErrValidationFailed, err)
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", ErrMsgMarshal, err)
	}
	raw := domain.RawRecord{ID: rec.EntityID(), Data: data}

	// Existence check and write are not atomic, so concurrent saves of the
	// same record serialize on a per-entity lock.
	lock := s.locks.GetLock(rec.EntityID())
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.exists(ctx, rec.EntityID())
	if err != nil {
		var zero T
		return zero, err
	}

	if s.monitor.IsOnline() {
		if err := s.saveRemote(ctx, raw, exists); err != nil {
			var zero T
			return zero, fmt.Errorf("%s: %w", ErrMsgRemoteSave, err)
		}
		if err := s.store.Put(ctx, s.storeName, raw); err != nil {
			var zero T
			return zero, fmt.Errorf("%s: %w", ErrMsgLocalPut, err)
		}
		s.cache.Add(rec.EntityID(), rec)
		log.Debug(LogMsgSavedOnline, "store", s.storeName, "id", rec.EntityID())
		return rec, nil
	}

	if err := s.store.Put(ctx, s.storeName, raw); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", ErrMsgLocalPut, err)
	}

	mType := domain.MutationCreate
	if exists {
		mType = domain.MutationUpdate
	}
	if err := s.enqueue(ctx, mType, rec.EntityID(), data); err != nil {
		var zero T
		return zero, err
	}

	s.cache.Add(rec.EntityID(), rec)
	log.Debug(LogMsgSavedOffline, "store", s.storeName, "id", rec.EntityID(), "type", mType)
	return rec, nil
}

func (s *service[T]) Get(ctx context.Context, id string) (T, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}

	raw, err := s.store.GetByID(ctx, s.storeName, id)
	if err != nil {
		var zero T
		return zero, err
	}

	rec, err := s.decode(raw)
	if err != nil {
		var zero T
		return zero, err
	}

	s.cache.Add(id, rec)
	return rec, nil
}

func (s *service[T]) List(ctx context.Context) ([]T, error) {
	raws, err := s.store.GetAll(ctx, s.storeName)
	if err != nil {
		return nil, err
	}

	recs := make([]T, 0, len(raws))
	for _, raw := range raws {
		rec, err := s.decode(raw)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *service[T]) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	lock := s.locks.GetLock(id)
	lock.Lock()
	defer lock.Unlock()

	if s.monitor.IsOnline() {
		if err := s.backend.Delete(ctx, s.storeName, id); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgRemoteDelete, err)
		}
		if err := s.store.Delete(ctx, s.storeName, id); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgLocalDelete, err)
		}
		s.cache.Remove(id)
		log.Debug(LogMsgDeletedOnline, "store", s.storeName, "id", id)
		return nil
	}

	if err := s.store.Delete(ctx, s.storeName, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLocalDelete, err)
	}
	if err := s.enqueue(ctx, domain.MutationDelete, id, nil); err != nil {
		return err
	}

	s.cache.Remove(id)
	log.Debug(LogMsgDeletedOffline, "store", s.storeName, "id", id)
	return nil
}

func (s *service[T]) saveRemote(ctx context.Context, raw domain.RawRecord, exists bool) error {
	if exists {
		return s.backend.Update(ctx, s.storeName, raw.ID, raw.Data)
	}
	return s.backend.Create(ctx, s.storeName, raw)
}

func (s *service[T]) exists(ctx context.Context, id string) (bool, error) {
	_, err := s.store.GetByID(ctx, s.storeName, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", ErrMsgExistenceCheck, err)
}

func (s *service[T]) enqueue(ctx context.Context, mType domain.MutationType, entityID string, data json.RawMessage) error {
	m, err := s.queue.Enqueue(ctx, domain.MutationInput{
		Type:      mType,
		StoreName: s.storeName,
		EntityID:  entityID,
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEnqueue, err)
	}

	logger.FromContext(ctx).Debug(LogMsgMutationQueued,
		"mutation_id", m.ID, "store", s.storeName, "entity_id", entityID, "type", mType)

	if s.eventBus != nil {
		evt := event.Event{
			Version: event.SchemaVersion,
			Type:    event.SyncMutationQueued,
			Payload: event.MutationQueuedPayloadV1{
				MutationID: m.ID,
				StoreName:  s.storeName,
				EntityID:   entityID,
			},
		}
		if err := s.eventBus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Error(LogMsgEventPublishFailed, "error", err)
		}
	}

	return nil
}

func (s *service[T]) decode(raw domain.RawRecord) (T, error) {
	rec := s.newRecord()
	if err := json.Unmarshal(raw.Data, rec); err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", ErrMsgUnmarshal, err)
	}
	return rec, nil
}

func (s *service[T]) purgeCache(ctx context.Context, _ event.Event) error {
	s.cache.Purge()
	logger.FromContext(ctx).Debug(LogMsgCachePurged, "store", s.storeName)
	return nil
}
