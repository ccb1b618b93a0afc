package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradepost-hq/tradepost/internal/database"
	"github.com/tradepost-hq/tradepost/internal/scheduler"
	"github.com/tradepost-hq/tradepost/internal/server"
	"github.com/tradepost-hq/tradepost/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	RemotePool *pgxpool.Pool
	LocalCache database.Handle
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop enqueueing periodic sync jobs)
// 3. Worker pool (finish in-flight drains and bulk syncs)
// 4. Remote pool and local cache (close connections last)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	// Stop the scheduler before the pool so nothing new is enqueued
	if components.Scheduler != nil {
		components.Scheduler.Stop()
		slog.Info(LogMsgSchedulerStopped)
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
		slog.Info(LogMsgWorkerPoolStopped)
	}

	if components.RemotePool != nil {
		components.RemotePool.Close()
		slog.Info(LogMsgRemotePoolClosed)
	}

	if components.LocalCache != nil {
		if err := components.LocalCache.Close(); err != nil {
			slog.Error(LogMsgLocalCacheCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
