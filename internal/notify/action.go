package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/job"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// ActionNotifier notifies the members of a list about an action event.
type ActionNotifier struct {
	lists        store.ListStore
	users        store.UserStore
	tokens       store.PushTokenStore
	dispatcher   *Dispatcher
	includeActor bool
	logger       *slog.Logger
}

// NewActionNotifier creates a notifier. When includeActor is false the member
// who acted does not receive a push about their own action.
func NewActionNotifier(
	lists store.ListStore,
	users store.UserStore,
	tokens store.PushTokenStore,
	dispatcher *Dispatcher,
	includeActor bool,
	logger *slog.Logger,
) *ActionNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionNotifier{
		lists:        lists,
		users:        users,
		tokens:       tokens,
		dispatcher:   dispatcher,
		includeActor: includeActor,
		logger:       logger.With("component", "action_notifier"),
	}
}

var _ job.Factory = (*ActionNotifier)(nil)

// CreateJob implements job.Factory. Every action event gets a dispatch job.
func (n *ActionNotifier) CreateJob(_ context.Context, event *events.ActionEvent) (job.Job, error) {
	return job.NewFunc(job.TypeActionDispatch, func(ctx context.Context) error {
		return n.Notify(ctx, event)
	}), nil
}

// Notify resolves the audience of event and dispatches the push. A list
// deleted before dispatch is not an error; there is nobody left to tell.
func (n *ActionNotifier) Notify(ctx context.Context, event *events.ActionEvent) error {
	log := logger.FromContextOrDefault(ctx, n.logger).With(
		slog.String("event_id", event.ID.String()),
		slog.String("action", string(event.Action)),
		slog.String("list_id", event.ListID.String()),
	)

	list, err := n.lists.GetByID(ctx, event.ListID)
	if errors.Is(err, store.ErrListNotFound) {
		log.Debug("list gone before dispatch, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load list for dispatch: %w", err)
	}

	actor, err := n.users.GetProfile(ctx, event.ActorID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to load actor for dispatch: %w", err)
		}
		actor = nil
	}

	audience, err := n.audience(ctx, event)
	if err != nil {
		return err
	}
	if len(audience) == 0 {
		log.Debug("no audience for event")
		return nil
	}

	tokens, err := n.tokens.TokensForUsers(ctx, audience)
	if err != nil {
		return fmt.Errorf("failed to load push tokens: %w", err)
	}

	msgs := ActionPayload(event, list, actor).To(tokens)
	report, err := n.dispatcher.Dispatch(ctx, msgs)
	if err != nil {
		return err
	}

	log.Info("dispatched action notification",
		slog.Int("recipients", len(audience)),
		slog.Int("messages", len(msgs)),
		slog.Int("pruned", report.Pruned))
	return nil
}

// audience returns every member of the list, minus the actor unless the
// notifier includes actors. A category prediction is not something the
// actor did, so it always goes to everyone.
func (n *ActionNotifier) audience(ctx context.Context, event *events.ActionEvent) ([]uuid.UUID, error) {
	members, err := n.lists.MemberIDs(ctx, event.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to load list members: %w", err)
	}
	if n.includeActor || event.Action == domain.ActionPredictTaskCategory {
		return members, nil
	}

	audience := make([]uuid.UUID, 0, len(members))
	for _, id := range members {
		if id != event.ActorID {
			audience = append(audience, id)
		}
	}
	return audience, nil
}
