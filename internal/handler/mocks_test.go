package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

// MockQuoteService mocks entity.Service[*domain.Quote]
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Save(ctx context.Context, rec *domain.Quote) (*domain.Quote, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, id string) (*domain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context) ([]*domain.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSyncService mocks syncer.Service
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Drain(ctx context.Context) (domain.DrainResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DrainResult), args.Error(1)
}

func (m *MockSyncService) BulkSync(ctx context.Context) (domain.BulkSyncResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.BulkSyncResult), args.Error(1)
}

func (m *MockSyncService) Status(ctx context.Context) (domain.SyncStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SyncStatus), args.Error(1)
}

func (m *MockSyncService) Pending(ctx context.Context) ([]domain.Mutation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mutation), args.Error(1)
}

func (m *MockSyncService) ClearLocal(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeMonitor is a trivial connectivity.Monitor for handler tests.
type fakeMonitor struct {
	online bool
}

func (f *fakeMonitor) IsOnline() bool                     { return f.online }
func (f *fakeMonitor) Set(_ context.Context, online bool) { f.online = online }
