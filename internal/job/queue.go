package job

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the Queue
var (
	ErrQueueClosed = errors.New("job queue is closed")
	ErrQueueFull   = errors.New("job queue is full")
)

// Queue is a bounded, non-blocking job queue.
type Queue struct {
	mu     sync.RWMutex
	jobs   chan Job
	logger *slog.Logger
	closed bool
}

// NewQueue creates a new queue with the specified buffer size.
func NewQueue(size int, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		jobs:   make(chan Job, size),
		logger: logger,
	}
}

// Enqueue adds a job to the queue for processing.
// Returns an error if the queue is full or closed.
func (q *Queue) Enqueue(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		q.logger.Debug("job enqueued",
			"job_id", job.ID(),
			"job_type", job.Type(),
			"queue_len", len(q.jobs),
			"queue_cap", cap(q.jobs))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.jobs))
	}
}

// Close closes the queue, preventing further submission. Jobs already
// queued can still be drained from Channel.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.jobs)
		q.logger.Info("job queue closed")
	}
}

// Channel returns a read-only channel for consuming jobs.
func (q *Queue) Channel() <-chan Job {
	return q.jobs
}
