package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Common event types
const (
	ConnectivityOnline  Type = "connectivity.online"
	ConnectivityOffline Type = "connectivity.offline"

	SyncDrainCompleted    Type = "sync.drain.completed"
	SyncBulkCompleted     Type = "sync.bulk.completed"
	SyncMutationQueued    Type = "sync.mutation.queued"
	SyncLocalStateCleared Type = "sync.local_state.cleared"
)

// Typed event payloads for type safety

// ConnectivityChangedPayloadV1 is the typed payload for connectivity events
type ConnectivityChangedPayloadV1 struct {
	Online    bool  `json:"online"`
	Timestamp int64 `json:"timestamp"`
}

// DrainCompletedPayloadV1 is the typed payload for drain completion events
type DrainCompletedPayloadV1 struct {
	Replayed int `json:"replayed"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// BulkSyncCompletedPayloadV1 is the typed payload for bulk sync completion events
type BulkSyncCompletedPayloadV1 struct {
	Stores  int `json:"stores"`
	Records int `json:"records"`
}

// MutationQueuedPayloadV1 is the typed payload for queued-mutation events
type MutationQueuedPayloadV1 struct {
	MutationID string `json:"mutation_id"`
	StoreName  string `json:"store_name"`
	EntityID   string `json:"entity_id"`
}

// NewConnectivityEvent creates a connectivity transition event
func NewConnectivityEvent(online bool) Event {
	eventType := ConnectivityOffline
	if online {
		eventType = ConnectivityOnline
	}
	return Event{
		Version: SchemaVersion,
		Type:    eventType,
		Payload: ConnectivityChangedPayloadV1{
			Online:    online,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a failing handler does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
