package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// ReminderSweeper sends due task reminders to the list owner's devices.
type ReminderSweeper struct {
	reminders  store.ReminderStore
	tokens     store.PushTokenStore
	dispatcher *Dispatcher
	now        func() time.Time
	logger     *slog.Logger
}

// NewReminderSweeper creates a sweeper.
func NewReminderSweeper(
	reminders store.ReminderStore,
	tokens store.PushTokenStore,
	dispatcher *Dispatcher,
	logger *slog.Logger,
) *ReminderSweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderSweeper{
		reminders:  reminders,
		tokens:     tokens,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     logger.With("component", "reminder_sweeper"),
	}
}

// Sweep notifies every due, unfired reminder once. Each reminder is marked
// fired before its messages are sent, so a failed send is not repeated on
// the next sweep.
func (s *ReminderSweeper) Sweep(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now().UTC()

	due, err := s.reminders.DueReminders(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load due reminders: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	owners := make([]uuid.UUID, 0, len(due))
	seen := make(map[uuid.UUID]bool, len(due))
	for _, r := range due {
		if !seen[r.OwnerID] {
			seen[r.OwnerID] = true
			owners = append(owners, r.OwnerID)
		}
	}

	tokens, err := s.tokens.TokensForUsers(ctx, owners)
	if err != nil {
		return fmt.Errorf("failed to load push tokens for reminders: %w", err)
	}
	byOwner := make(map[uuid.UUID][]int, len(owners))
	for i, t := range tokens {
		byOwner[t.UserID] = append(byOwner[t.UserID], i)
	}

	var msgs []Message
	fired := 0
	for _, r := range due {
		if err := s.reminders.MarkReminderFired(ctx, r.TaskID, now); err != nil {
			log.Error("failed to mark reminder fired, skipping",
				slog.String("error", err.Error()),
				slog.String("task_id", r.TaskID.String()))
			continue
		}
		fired++

		payload := ReminderPayload(r)
		for _, i := range byOwner[r.OwnerID] {
			msgs = append(msgs, Message{Token: tokens[i].Token, Data: payload.Data, Alert: payload.Alert})
		}
	}

	report, err := s.dispatcher.Dispatch(ctx, msgs)
	if err != nil {
		return err
	}

	log.Info("reminder sweep finished",
		slog.Int("due", len(due)),
		slog.Int("fired", fired),
		slog.Int("messages", len(msgs)),
		slog.Int("pruned", report.Pruned))
	return nil
}
