package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tradepost-hq/tradepost/internal/bootstrap"
	"github.com/tradepost-hq/tradepost/internal/config"
	"github.com/tradepost-hq/tradepost/internal/connectivity"
	"github.com/tradepost-hq/tradepost/internal/entity"
	"github.com/tradepost-hq/tradepost/internal/event"
	"github.com/tradepost-hq/tradepost/internal/scheduler"
	"github.com/tradepost-hq/tradepost/internal/server"
	"github.com/tradepost-hq/tradepost/internal/syncer"
	"github.com/tradepost-hq/tradepost/internal/validation"
	"github.com/tradepost-hq/tradepost/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Application exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	// Local cache and repositories
	db, err := bootstrap.OpenLocalCache(cfg)
	if err != nil {
		return err
	}
	repos := bootstrap.InitializeRepositories(db)

	// Remote backend
	backend, remotePool, err := bootstrap.InitializeBackend(ctx, cfg)
	if err != nil {
		db.Close()
		return err
	}

	// Event bus and connectivity
	eventBus := event.NewMemoryBus()
	monitor := connectivity.NewMonitor(eventBus, cfg.StartOnline)

	// Sync coordinator
	syncService := syncer.NewService(repos.Entities, repos.Queue, repos.State, backend, monitor, eventBus)

	// Entity facades
	facades := entity.NewFacades(entity.Deps{
		Store:     repos.Entities,
		Queue:     repos.Queue,
		Backend:   backend,
		Monitor:   monitor,
		EventBus:  eventBus,
		Validate:  validator.New(),
		CacheSize: cfg.EntityCacheSize,
		CacheTTL:  cfg.EntityCacheTTL,
	})

	payloads, err := validation.NewPayloadValidator()
	if err != nil {
		db.Close()
		return err
	}

	// Background workers and periodic sync
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.DrainInterval, &syncer.DrainJob{Syncer: syncService})
	sched.Schedule(cfg.BulkSyncInterval, &syncer.BulkSyncJob{Syncer: syncService})

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:    eventBus,
		WorkerPool:  pool,
		SyncService: syncService,
	}); err != nil {
		db.Close()
		return err
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, db, facades, syncService, monitor, payloads)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-stop:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: pool,
		RemotePool: remotePool,
		LocalCache: db,
	})

	return nil
}
