package job

import (
	"context"

	"github.com/google/uuid"
)

// Job type constants
const (
	// TypeActionDispatch sends push notifications for one action event
	TypeActionDispatch = "action_dispatch"

	// TypeCategoryPrediction asks the classifier for a task's category
	TypeCategoryPrediction = "category_prediction"
)

// Job represents a unit of background work to be processed.
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier
	Type() string

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// Submitter accepts jobs for asynchronous execution.
type Submitter interface {
	// Submit queues the job without blocking. It returns ErrQueueFull or
	// ErrQueueClosed when the job cannot be accepted.
	Submit(ctx context.Context, job Job) error
}

// Func adapts a function to Job.
type Func struct {
	id  uuid.UUID
	typ string
	fn  func(ctx context.Context) error
}

// NewFunc creates a Job of the given type that calls fn.
func NewFunc(typ string, fn func(ctx context.Context) error) *Func {
	return &Func{id: uuid.New(), typ: typ, fn: fn}
}

// ID implements Job.
func (f *Func) ID() uuid.UUID { return f.id }

// Type implements Job.
func (f *Func) Type() string { return f.typ }

// Execute implements Job.
func (f *Func) Execute(ctx context.Context) error { return f.fn(ctx) }
