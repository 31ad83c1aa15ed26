package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher fans notifications out to a fixed set of workers using
// consistent hashing on the owner id, guaranteeing per-user delivery order.
// It implements ports.NotificationSink so services hand it notifications
// without blocking on the platform channel.
type Dispatcher struct {
	workers []chan domain.Notification
	sink    ports.NotificationSink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers
// delivering to sink. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.NotificationSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues a notification for its owner's worker. The call is
// non-blocking up to channelBuffer capacity and never reports a delivery
// failure; those are logged by the worker.
func (d *Dispatcher) Notify(_ context.Context, n domain.Notification) error {
	d.workers[d.shardIndex(n.OwnerID)] <- n
	return nil
}

// shardIndex maps an owner id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ownerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Notify(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("tag", n.Tag).
					Str("owner_id", n.OwnerID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
