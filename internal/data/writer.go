package data

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
)

// writeTimeout bounds a single queued update.
const writeTimeout = 10 * time.Second

type write struct {
	id         grid.RowID
	key, value string
}

// WriteQueue applies field updates to a Service in submission order on a
// single goroutine, so an undo issued right after an edit lands after it.
// Failures are reported on Errors.
type WriteQueue struct {
	svc  Service
	log  *slog.Logger
	reqs chan write
	errs chan error
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewWriteQueue starts a queue with room for size pending writes.
func NewWriteQueue(svc Service, size int, logger *slog.Logger) *WriteQueue {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	q := &WriteQueue{
		svc:  svc,
		log:  logger,
		reqs: make(chan write, max(1, size)),
		errs: make(chan error, 16),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// Submit enqueues a write. It blocks while the queue is full and is a no-op
// after Close.
func (q *WriteQueue) Submit(id grid.RowID, key, value string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.log.Warn("write dropped, queue closed", "id", id, "key", key)
		return
	}
	q.reqs <- write{id: id, key: key, value: value}
}

// Errors delivers write failures. It is closed once the queue has drained
// after Close.
func (q *WriteQueue) Errors() <-chan error { return q.errs }

// Close stops accepting writes and waits for pending ones to finish.
func (q *WriteQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.reqs)
	}
	q.mu.Unlock()
	<-q.done
}

func (q *WriteQueue) run() {
	defer close(q.done)
	defer close(q.errs)

	for w := range q.reqs {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := q.svc.Update(ctx, w.id, w.key, w.value)
		cancel()
		if err == nil {
			q.log.Debug("saved", "id", w.id, "key", w.key)
			continue
		}
		err = fmt.Errorf("saving %s of row %d: %w", w.key, w.id, err)
		q.log.Error("write failed", "err", err)
		select {
		case q.errs <- err:
		default:
			// Nobody is draining errors; the log keeps the record.
		}
	}
}
