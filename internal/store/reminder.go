package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// ReminderStore finds task reminders that are due.
type ReminderStore interface {
	// DueReminders returns every task whose reminder date is at or before now
	// and which has not fired since that date was set.
	DueReminders(ctx context.Context, now time.Time) ([]domain.Reminder, error)

	// MarkReminderFired records that the task's reminder fired at firedAt.
	// A task deleted in the meantime is not an error.
	MarkReminderFired(ctx context.Context, taskID uuid.UUID, firedAt time.Time) error
}
