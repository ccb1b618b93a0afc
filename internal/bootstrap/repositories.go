package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradepost-hq/tradepost/internal/config"
	"github.com/tradepost-hq/tradepost/internal/database"
	"github.com/tradepost-hq/tradepost/internal/database/sqlite"
	"github.com/tradepost-hq/tradepost/internal/remote"
	"github.com/tradepost-hq/tradepost/internal/repository"
)

// Repositories holds the local storage implementations used by the
// application. This provides a centralized location for repository
// initialization and makes dependency injection clearer.
type Repositories struct {
	Entities repository.EntityStore
	Queue    repository.MutationQueue
	State    repository.SyncState
}

// OpenLocalCache opens the SQLite cache file and applies pending migrations.
// The returned handle backs every repository for the lifetime of the process.
func OpenLocalCache(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Open(cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate local cache: %w", err)
	}

	slog.Info(LogMsgLocalCacheReady, "path", cfg.CachePath)
	return db, nil
}

// InitializeRepositories creates all repository implementations over the
// local cache database.
func InitializeRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Entities: sqlite.NewEntityStore(db),
		Queue:    sqlite.NewMutationQueue(db),
		State:    sqlite.NewSyncState(db),
	}
}

// InitializeBackend builds the remote backend named by REMOTE_KIND. For the
// postgres kind it also connects the pool and ensures the remote schema
// exists; the returned pool is nil for the http kind.
func InitializeBackend(ctx context.Context, cfg *config.Config) (remote.Backend, *pgxpool.Pool, error) {
	switch cfg.RemoteKind {
	case config.RemoteKindPostgres:
		pool, err := remote.NewPool(ctx, cfg.GetDBConnString())
		if err != nil {
			return nil, nil, fmt.Errorf("connect remote backend: %w", err)
		}
		backend := remote.NewPostgresBackend(pool)
		if err := backend.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure remote schema: %w", err)
		}
		slog.Info(LogMsgRemoteBackendConfigured, "kind", cfg.RemoteKind, "host", cfg.DBHost)
		return backend, pool, nil
	case config.RemoteKindHTTP:
		backend := remote.NewHTTPBackend(cfg.RemoteBaseURL, cfg.RemoteAPIKey)
		slog.Info(LogMsgRemoteBackendConfigured, "kind", cfg.RemoteKind, "base_url", cfg.RemoteBaseURL)
		return backend, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown remote kind: %s", cfg.RemoteKind)
	}
}
