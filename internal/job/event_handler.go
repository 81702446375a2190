package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/events"
)

// Factory turns an action event into a job. It returns a nil Job for
// events it does not care about.
type Factory interface {
	CreateJob(ctx context.Context, event *events.ActionEvent) (Job, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(ctx context.Context, event *events.ActionEvent) (Job, error)

// CreateJob implements Factory.
func (f FactoryFunc) CreateJob(ctx context.Context, event *events.ActionEvent) (Job, error) {
	return f(ctx, event)
}

// EventHandler implements events.EventHandler by creating a job for each
// event and submitting it, so slow work never runs on the emitter's goroutine.
type EventHandler struct {
	factory   Factory
	submitter Submitter
	logger    *slog.Logger
}

// NewEventHandler creates a handler that submits the jobs factory creates.
func NewEventHandler(factory Factory, submitter Submitter, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{
		factory:   factory,
		submitter: submitter,
		logger:    logger.With("component", "job_event_handler"),
	}
}

var _ events.EventHandler = (*EventHandler)(nil)

// HandleEvent implements events.EventHandler.
func (h *EventHandler) HandleEvent(ctx context.Context, event *events.ActionEvent) error {
	job, err := h.factory.CreateJob(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to create job for event %s: %w", event.ID, err)
	}
	if job == nil {
		h.logger.Debug("ignoring event", "event_id", event.ID, "action", event.Action)
		return nil
	}

	if err := h.submitter.Submit(ctx, job); err != nil {
		return fmt.Errorf("failed to submit %s job: %w", job.Type(), err)
	}

	h.logger.Debug("submitted job for event",
		"event_id", event.ID,
		"job_id", job.ID(),
		"job_type", job.Type())
	return nil
}
