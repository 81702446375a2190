package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
)

// EventEmitter records emitted events. Err, when set, is returned from
// EmitEvent after recording.
type EventEmitter struct {
	mu     sync.Mutex
	events []*events.ActionEvent
	Err    error
}

var _ events.EventEmitter = (*EventEmitter)(nil)

func (e *EventEmitter) EmitEvent(_ context.Context, event *events.ActionEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.Err
}

// Events returns the recorded events.
func (e *EventEmitter) Events() []*events.ActionEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*events.ActionEvent(nil), e.events...)
}

// Actions returns the action of each recorded event, in order.
func (e *EventEmitter) Actions() []domain.Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	actions := make([]domain.Action, len(e.events))
	for i, ev := range e.events {
		actions[i] = ev.Action
	}
	return actions
}
