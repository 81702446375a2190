package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// subscription is a handler plus the actions it wants. No actions means all.
type subscription struct {
	handler EventHandler
	actions []domain.Action
}

func (s subscription) wants(a domain.Action) bool {
	return len(s.actions) == 0 || slices.Contains(s.actions, a)
}

// InMemoryEventEmitter is the in-process ActionEvent bus. It delivers each
// event synchronously, in registration order, to every subscribed handler.
// Handlers that do slow work hand it to a job runner.
type InMemoryEventEmitter struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

var (
	_ EventEmitter = (*InMemoryEventEmitter)(nil)
	_ EventHandler = (*InMemoryEventEmitter)(nil)
)

func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{logger: logger.With("component", "event_bus")}
}

// RegisterHandler subscribes handler to actions, or to every action when
// none are given.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler, actions ...domain.Action) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, subscription{handler: handler, actions: actions})
}

// EmitEvent delivers event to every interested handler. A failing handler
// does not stop delivery to the rest; all failures are joined in the result.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *ActionEvent) error {
	e.mu.RLock()
	subs := slices.Clone(e.subs)
	e.mu.RUnlock()

	var errs []error
	delivered := 0
	for _, s := range subs {
		if !s.wants(event.Action) {
			continue
		}
		delivered++
		if err := s.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("event handler failed",
				"error", err,
				"event_id", event.ID,
				"action", event.Action,
				"list_id", event.ListID)
			errs = append(errs, err)
		}
	}

	if delivered == 0 {
		e.logger.Debug("no subscribers for event", "event_id", event.ID, "action", event.Action)
	}
	return errors.Join(errs...)
}

// HandleEvent lets the bus sit behind a transport such as KafkaConsumer.
func (e *InMemoryEventEmitter) HandleEvent(ctx context.Context, event *ActionEvent) error {
	return e.EmitEvent(ctx, event)
}
