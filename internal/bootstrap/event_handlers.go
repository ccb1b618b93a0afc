package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/tradepost-hq/tradepost/internal/event"
	"github.com/tradepost-hq/tradepost/internal/metrics"
	"github.com/tradepost-hq/tradepost/internal/syncer"
	"github.com/tradepost-hq/tradepost/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus    event.Bus
	WorkerPool  *worker.Pool
	SyncService syncer.Service
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Metrics collector (for event-based metrics)
// - Reconnect handler (drains the queue and bulk syncs when connectivity returns)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("failed to register metrics collector: %w", err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	syncer.RegisterEventHandlers(deps.EventBus, deps.WorkerPool, deps.SyncService)
	slog.Info(LogMsgReconnectHandlerRegistered)

	return nil
}
