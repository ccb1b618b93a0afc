package syncer

import (
	"context"
	"errors"

	"github.com/tradepost-hq/tradepost/internal/domain"
	"github.com/tradepost-hq/tradepost/internal/event"
	"github.com/tradepost-hq/tradepost/internal/logger"
	"github.com/tradepost-hq/tradepost/internal/worker"
)

// DrainJob replays the pending queue. Scheduled periodically and fired on
// reconnect. Being offline is the normal idle state, not a job failure.
type DrainJob struct {
	Syncer Service
}

func (j *DrainJob) Process(ctx context.Context) error {
	_, err := j.Syncer.Drain(ctx)
	if errors.Is(err, domain.ErrOffline) {
		return nil
	}
	return err
}

// BulkSyncJob refreshes the local entity store from the remote snapshot.
type BulkSyncJob struct {
	Syncer Service
}

func (j *BulkSyncJob) Process(ctx context.Context) error {
	_, err := j.Syncer.BulkSync(ctx)
	if errors.Is(err, domain.ErrOffline) {
		return nil
	}
	return err
}

// ReconnectJob runs the full reconnect sequence: drain queued writes first,
// then download the fresh snapshot so replayed changes come back confirmed.
type ReconnectJob struct {
	Syncer Service
}

func (j *ReconnectJob) Process(ctx context.Context) error {
	if _, err := j.Syncer.Drain(ctx); err != nil {
		if errors.Is(err, domain.ErrOffline) {
			return nil
		}
		return err
	}
	_, err := j.Syncer.BulkSync(ctx)
	if errors.Is(err, domain.ErrOffline) {
		return nil
	}
	return err
}

// RegisterEventHandlers wires the coordinator to the event bus: a
// connectivity-online transition queues the reconnect sequence on the worker
// pool so the publisher is never blocked behind a drain.
func RegisterEventHandlers(bus event.Bus, pool *worker.Pool, svc Service) {
	bus.Subscribe(event.ConnectivityOnline, func(ctx context.Context, evt event.Event) error {
		logger.FromContext(ctx).Debug(LogMsgReconnectQueued)
		pool.Enqueue(&ReconnectJob{Syncer: svc})
		return nil
	})
}
