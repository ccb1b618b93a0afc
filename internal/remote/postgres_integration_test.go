package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tradepost-hq/tradepost/internal/domain"
)

func TestPostgresBackend_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()

	if pgContainer == nil {
		t.Skip("Skipping integration test: could not start Postgres container")
	}
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connString, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := NewPool(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	backend := NewPostgresBackend(pool)
	require.NoError(t, backend.EnsureSchema(ctx))

	t.Run("create and fetch", func(t *testing.T) {
		rec, err := domain.NewRawRecord([]byte(`{"id":"q-1","title":"Fence repair"}`))
		require.NoError(t, err)
		require.NoError(t, backend.Create(ctx, domain.StoreQuotes, rec))

		records, err := backend.FetchAll(ctx, domain.StoreQuotes)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "q-1", records[0].ID)
	})

	t.Run("create replay is idempotent", func(t *testing.T) {
		rec, err := domain.NewRawRecord([]byte(`{"id":"q-2","title":"Deck"}`))
		require.NoError(t, err)
		require.NoError(t, backend.Create(ctx, domain.StoreQuotes, rec))
		require.NoError(t, backend.Create(ctx, domain.StoreQuotes, rec))

		records, err := backend.FetchAll(ctx, domain.StoreQuotes)
		require.NoError(t, err)

		var count int
		for _, r := range records {
			if r.ID == "q-2" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("update replay converges", func(t *testing.T) {
		require.NoError(t, backend.Update(ctx, domain.StoreQuotes, "q-1", []byte(`{"id":"q-1","title":"Fence repair v2"}`)))
		require.NoError(t, backend.Update(ctx, domain.StoreQuotes, "q-1", []byte(`{"id":"q-1","title":"Fence repair v2"}`)))

		records, err := backend.FetchAll(ctx, domain.StoreQuotes)
		require.NoError(t, err)
		for _, r := range records {
			if r.ID == "q-1" {
				assert.Contains(t, string(r.Data), "Fence repair v2")
			}
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, domain.StoreQuotes, "q-1"))
		require.NoError(t, backend.Delete(ctx, domain.StoreQuotes, "q-1"))

		records, err := backend.FetchAll(ctx, domain.StoreQuotes)
		require.NoError(t, err)
		for _, r := range records {
			assert.NotEqual(t, "q-1", r.ID)
		}
	})
}
