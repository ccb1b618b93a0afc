package connectivity

import (
	"context"
	"sync/atomic"

	"github.com/tradepost-hq/tradepost/internal/event"
	"github.com/tradepost-hq/tradepost/internal/logger"
)

// Monitor tracks whether the remote backend is reachable and publishes
// transition events when the state changes.
type Monitor interface {
	IsOnline() bool
	Set(ctx context.Context, online bool)
}

type monitor struct {
	online   atomic.Bool
	eventBus event.Bus
}

// NewMonitor creates a connectivity monitor with the given initial state.
// No event is published for the initial state.
func NewMonitor(eventBus event.Bus, initialOnline bool) Monitor {
	m := &monitor{eventBus: eventBus}
	m.online.Store(initialOnline)
	return m
}

func (m *monitor) IsOnline() bool {
	return m.online.Load()
}

// Set updates the connectivity state. An event is published only on an
// actual transition, so repeated calls with the same state are no-ops.
func (m *monitor) Set(ctx context.Context, online bool) {
	if !m.online.CompareAndSwap(!online, online) {
		return
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgConnectivityChanged, "online", online)

	if m.eventBus == nil {
		return
	}
	if err := m.eventBus.Publish(ctx, event.NewConnectivityEvent(online)); err != nil {
		log.Error(LogMsgPublishFailed, "error", err)
	}
}
