package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// MockBackend implements remote.Backend for testing
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) FetchAll(ctx context.Context, storeName string) ([]domain.RawRecord, error) {
	args := m.Called(ctx, storeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRecord), args.Error(1)
}

func (m *MockBackend) Create(ctx context.Context, storeName string, rec domain.RawRecord) error {
	args := m.Called(ctx, storeName, rec)
	return args.Error(0)
}

func (m *MockBackend) Update(ctx context.Context, storeName, id string, data json.RawMessage) error {
	args := m.Called(ctx, storeName, id, data)
	return args.Error(0)
}

func (m *MockBackend) Delete(ctx context.Context, storeName, id string) error {
	args := m.Called(ctx, storeName, id)
	return args.Error(0)
}

// MockEntityStore implements repository.EntityStore for testing
type MockEntityStore struct {
	mock.Mock
}

func (m *MockEntityStore) GetAll(ctx context.Context, storeName string) ([]domain.RawRecord, error) {
	args := m.Called(ctx, storeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRecord), args.Error(1)
}

func (m *MockEntityStore) GetByID(ctx context.Context, storeName, id string) (domain.RawRecord, error) {
	args := m.Called(ctx, storeName, id)
	return args.Get(0).(domain.RawRecord), args.Error(1)
}

func (m *MockEntityStore) Put(ctx context.Context, storeName string, rec domain.RawRecord) error {
	args := m.Called(ctx, storeName, rec)
	return args.Error(0)
}

func (m *MockEntityStore) Delete(ctx context.Context, storeName, id string) error {
	args := m.Called(ctx, storeName, id)
	return args.Error(0)
}

func (m *MockEntityStore) BulkPut(ctx context.Context, storeName string, recs []domain.RawRecord) error {
	args := m.Called(ctx, storeName, recs)
	return args.Error(0)
}

func (m *MockEntityStore) Clear(ctx context.Context, storeName string) error {
	args := m.Called(ctx, storeName)
	return args.Error(0)
}

// MockSyncState implements repository.SyncState for testing
type MockSyncState struct {
	mock.Mock
}

func (m *MockSyncState) LastSyncTime(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockSyncState) SetLastSyncTime(ctx context.Context, t time.Time) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockSyncState) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeQueue is an in-memory repository.MutationQueue. Drain tests need real
// enqueue-order and removal semantics, which a call-recording mock obscures.
type fakeQueue struct {
	mu        sync.Mutex
	mutations []domain.Mutation
	nextID    int
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{}
}

func (q *fakeQueue) Enqueue(ctx context.Context, input domain.MutationInput) (domain.Mutation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	m := domain.Mutation{
		ID:        fmt.Sprintf("m%d", q.nextID),
		Timestamp: time.Now().UTC(),
		Type:      input.Type,
		StoreName: input.StoreName,
		EntityID:  input.EntityID,
		Data:      input.Data,
	}
	q.mutations = append(q.mutations, m)
	return m, nil
}

func (q *fakeQueue) DequeueAll(ctx context.Context) ([]domain.Mutation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Mutation, len(q.mutations))
	copy(out, q.mutations)
	return out, nil
}

func (q *fakeQueue) Remove(ctx context.Context, mutationID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, m := range q.mutations {
		if m.ID == mutationID {
			q.mutations = append(q.mutations[:i], q.mutations[i+1:]...)
			return nil
		}
	}
	return domain.ErrMutationNotFound
}

func (q *fakeQueue) RecordFailure(ctx context.Context, mutationID, errorMessage string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.mutations {
		if q.mutations[i].ID == mutationID {
			q.mutations[i].RetryCount++
			q.mutations[i].LastError = errorMessage
			return nil
		}
	}
	return domain.ErrMutationNotFound
}

func (q *fakeQueue) PendingCount(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.mutations), nil
}

func (q *fakeQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.mutations = nil
	return nil
}

// fakeMonitor implements connectivity.Monitor with a fixed state.
type fakeMonitor struct {
	online bool
}

func (f *fakeMonitor) IsOnline() bool                       { return f.online }
func (f *fakeMonitor) Set(ctx context.Context, online bool) { f.online = online }
