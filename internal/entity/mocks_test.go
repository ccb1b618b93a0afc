package entity

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-hq/tradepost/internal/database"
	"github.com/tradepost-hq/tradepost/internal/database/sqlite"
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

// fakeMonitor implements connectivity.Monitor with a switchable state.
type fakeMonitor struct {
	online bool
}

func (f *fakeMonitor) IsOnline() bool                       { return f.online }
func (f *fakeMonitor) Set(ctx context.Context, online bool) { f.online = online }

// openTestDB opens a fresh migrated cache database in a temp directory.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

// newTestDeps wires facades over a real local database with a mocked remote.
func newTestDeps(t *testing.T, backend *MockBackend, monitor *fakeMonitor) Deps {
	t.Helper()

	db := openTestDB(t)
	return Deps{
		Store:    sqlite.NewEntityStore(db),
		Queue:    sqlite.NewMutationQueue(db),
		Backend:  backend,
		Monitor:  monitor,
		Validate: validator.New(),
	}
}
