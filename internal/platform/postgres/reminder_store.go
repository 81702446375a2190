package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgresReminderStore implements store.ReminderStore.
type PostgresReminderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReminderStore creates a reminder store.
func NewPostgresReminderStore(db store.DBTX, logger *slog.Logger) *PostgresReminderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReminderStore{
		db:     db,
		logger: logger.With(slog.String("component", "reminder_store")),
	}
}

var _ store.ReminderStore = (*PostgresReminderStore)(nil)

// DueReminders implements store.ReminderStore. A reminder whose date is
// moved after it fired becomes due again.
func (s *PostgresReminderStore) DueReminders(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.label, t.reminder_date, l.id, l.title, l.color, l.icon, l.owner_id
		FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE t.reminder_date <= $1
		  AND (t.reminder_fired IS NULL OR t.reminder_fired < t.reminder_date)
		ORDER BY t.reminder_date`, now.UTC())
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var reminders []domain.Reminder
	for rows.Next() {
		var (
			r           domain.Reminder
			color, icon sql.NullString
		)
		err := rows.Scan(&r.TaskID, &r.TaskLabel, &r.ReminderDate, &r.ListID, &r.ListTitle,
			&color, &icon, &r.OwnerID)
		if err != nil {
			return nil, MapError(err)
		}
		r.ListColor = color.String
		r.ListIcon = icon.String
		reminders = append(reminders, r)
	}
	return reminders, MapError(rows.Err())
}

// MarkReminderFired implements store.ReminderStore.
func (s *PostgresReminderStore) MarkReminderFired(ctx context.Context, taskID uuid.UUID, firedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET reminder_fired = $2 WHERE id = $1`, taskID, firedAt.UTC())
	return MapError(err)
}
