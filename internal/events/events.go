package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// ActionEvent records that a list member changed something. It is never
// persisted; it only triggers notification and follow-up jobs.
type ActionEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	ListID uuid.UUID `json:"list_id"`

	// TaskID is the affected task, or domain.NoTaskID for list-scoped actions
	TaskID string `json:"task_id"`

	// TaskLabel and TaskCategory snapshot the task when the event is
	// created, so a removed task can still be described.
	TaskLabel    string `json:"task_label,omitempty"`
	TaskCategory string `json:"task_category,omitempty"`

	// PreviousLabel is set on updates to the label the task had before.
	PreviousLabel string `json:"previous_label,omitempty"`

	ActorID uuid.UUID     `json:"actor_id"`
	Action  domain.Action `json:"action"`

	CreatedAt time.Time `json:"created_at"`
}

// NewActionEvent creates an event for action by actorID on listID.
// taskID may be nil for list-scoped actions.
func NewActionEvent(listID uuid.UUID, taskID *uuid.UUID, actorID uuid.UUID, action domain.Action) *ActionEvent {
	task := domain.NoTaskID
	if taskID != nil {
		task = taskID.String()
	}
	return &ActionEvent{
		ID:        uuid.New(),
		ListID:    listID,
		TaskID:    task,
		ActorID:   actorID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTaskEvent creates an event about task, snapshotting its label and category.
func NewTaskEvent(task *domain.Task, actorID uuid.UUID, action domain.Action) *ActionEvent {
	e := NewActionEvent(task.ListID, &task.ID, actorID, action)
	e.TaskLabel = task.Label
	e.TaskCategory = task.CategoryName()
	return e
}

// LabelChanged reports whether an update event renamed its task.
func (e *ActionEvent) LabelChanged() bool {
	return e.PreviousLabel != "" && e.PreviousLabel != e.TaskLabel
}

// TaskUUID returns the affected task id. ok is false for list-scoped events.
func (e *ActionEvent) TaskUUID() (id uuid.UUID, ok bool) {
	if e.TaskID == "" || e.TaskID == domain.NoTaskID {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(e.TaskID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Validate checks that the event names a list, an actor and a known action.
func (e *ActionEvent) Validate() error {
	if e.ListID == uuid.Nil {
		return fmt.Errorf("action event %s has no list id", e.ID)
	}
	if e.ActorID == uuid.Nil {
		return fmt.Errorf("action event %s has no actor id", e.ID)
	}
	if !e.Action.Valid() {
		return fmt.Errorf("action event %s has unknown action %q", e.ID, e.Action)
	}
	return nil
}

// DecodeActionEvent parses and validates an event encoded as JSON.
func DecodeActionEvent(data []byte) (*ActionEvent, error) {
	var e ActionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode action event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ActionEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *ActionEvent) error

// HandleEvent implements EventHandler.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *ActionEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *ActionEvent) error
}
