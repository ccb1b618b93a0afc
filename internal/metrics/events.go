package metrics

import (
	"context"

	"github.com/tradepost-hq/tradepost/internal/event"
	"github.com/tradepost-hq/tradepost/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ConnectivityOnline,
		event.ConnectivityOffline,
		event.SyncDrainCompleted,
		event.SyncBulkCompleted,
		event.SyncMutationQueued,
		event.SyncLocalStateCleared,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ConnectivityOnline:
		ConnectivityState.Set(1)
	case event.ConnectivityOffline:
		ConnectivityState.Set(0)
	case event.SyncLocalStateCleared:
		PendingMutations.Set(0)
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
