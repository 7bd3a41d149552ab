package storage

import (
	"context"
	"sync"
	"time"

	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/metrics"
)

// Queue log messages
const (
	LogMsgWriteFailed     = "Persistence write failed, in-memory state stays authoritative"
	LogMsgShutdownTimeout = "Write queue shutdown timed out, pending writes lost"
	LogMsgQueueDrained    = "Write queue drained"
)

// FlushPollInterval is how often Flush re-checks for an empty queue
const FlushPollInterval = 5 * time.Millisecond

// WriteQueue coalesces engine writes per key and applies them to the store
// on a background goroutine. Semantics are last-write-wins: a newer Enqueue
// for a key replaces any pending value for that key. A failed write is logged
// and dropped; the next mutation of the same key enqueues fresh bytes, which
// is the retry. Callers must treat the in-memory state as authoritative for
// the session.
type WriteQueue struct {
	store Store

	mu      sync.Mutex
	pending map[string][]byte
	writing int

	notify chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewWriteQueue creates a WriteQueue and starts its worker
func NewWriteQueue(store Store) *WriteQueue {
	q := &WriteQueue{
		store:   store,
		pending: make(map[string][]byte),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// Enqueue schedules value to be written under key, replacing any pending
// write for the same key. Never blocks.
func (q *WriteQueue) Enqueue(key string, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)

	q.mu.Lock()
	q.pending[key] = stored
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *WriteQueue) worker() {
	defer q.wg.Done()

	for {
		select {
		case <-q.notify:
			q.drain()
		case <-q.done:
			// Final drain so a clean exit closes the accepted-loss window
			q.drain()
			return
		}
	}
}

// drain writes out a snapshot of the pending map. Writes happen outside the
// lock so Enqueue never waits on the backend.
func (q *WriteQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		batch := q.pending
		q.pending = make(map[string][]byte)
		q.writing = len(batch)
		q.mu.Unlock()

		ctx := context.Background()
		for key, value := range batch {
			if err := q.store.Set(ctx, key, value); err != nil {
				metrics.PersistenceFailures.WithLabelValues(key).Inc()
				logger.FromContext(ctx).Error(LogMsgWriteFailed, "key", key, "error", err)
			}
			q.mu.Lock()
			q.writing--
			q.mu.Unlock()
		}
	}
}

// Flush blocks until every write enqueued before the call has been attempted
// or ctx expires. Used by tests and by read paths that need read-your-writes
// against the backend.
func (q *WriteQueue) Flush(ctx context.Context) error {
	for {
		q.mu.Lock()
		idle := len(q.pending) == 0 && q.writing == 0
		q.mu.Unlock()
		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(FlushPollInterval):
		}
	}
}

// Shutdown stops the worker after draining pending writes, honoring ctx
func (q *WriteQueue) Shutdown(ctx context.Context) error {
	close(q.done)

	finished := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		logger.FromContext(ctx).Info(LogMsgQueueDrained)
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
