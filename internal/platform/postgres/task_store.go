package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/domain/ordinal"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const taskColumns = `id, list_id, label, is_completed, is_starred, details, reminder_date,
	due_date, date_created, last_modified, ordinal, category`

// PostgresTaskStore implements store.TaskStore.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a task store on db, which may be a pool or a
// transaction. If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTxTaskStore implements store.TaskStore.
func (s *PostgresTaskStore) WithTxTaskStore(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// LockCollection implements store.OrdinalStore for the tasks of a list.
func (s *PostgresTaskStore) LockCollection(ctx context.Context, listID uuid.UUID) error {
	return lockCollection(ctx, s.db, "tasks", listID)
}

// MaxOrdinal implements store.OrdinalStore.
func (s *PostgresTaskStore) MaxOrdinal(ctx context.Context, listID uuid.UUID) (int, bool, error) {
	var highest sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(ordinal) FROM tasks WHERE list_id = $1`, listID).Scan(&highest)
	if err != nil {
		return 0, false, MapError(err)
	}
	return int(highest.Int64), highest.Valid, nil
}

// ApplyOrdinalShift implements store.OrdinalStore. The moved task must belong
// to the list; otherwise nothing is changed and store.ErrTaskNotFound is returned.
func (s *PostgresTaskStore) ApplyOrdinalShift(
	ctx context.Context,
	listID uuid.UUID,
	taskID uuid.UUID,
	shift ordinal.Shift,
	lastModified time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET ordinal = CASE WHEN id = $2 THEN $3 ELSE ordinal + $4 END,
		    last_modified = $5
		WHERE list_id = $1
		  AND EXISTS (SELECT 1 FROM tasks WHERE id = $2 AND list_id = $1)
		  AND (id = $2 OR ordinal BETWEEN $6 AND $7)`,
		listID, taskID, shift.To, shift.Sign, lastModified.UTC(), shift.Lower, shift.Upper)
	if err != nil {
		log.Error("failed to apply task ordinal shift",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()),
			slog.String("task_id", taskID.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Debug("applied task ordinal shift",
		slog.String("list_id", listID.String()),
		slog.String("task_id", taskID.String()),
		slog.Int("from", shift.From),
		slog.Int("to", shift.To))
	return nil
}

// Create implements store.TaskStore.
func (s *PostgresTaskStore) Create(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.ListID, t.Label, t.IsCompleted, t.IsStarred, nullString(t.Details),
		nullTime(t.ReminderDate), nullTime(t.DueDate), t.DateCreated.UTC(),
		t.LastModified.UTC(), t.Ordinal, nullString(t.Category))
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", t.ID.String()),
			slog.String("list_id", t.ListID.String()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.TaskStore.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	return t, nil
}

// ListByList implements store.TaskStore.
func (s *PostgresTaskStore) ListByList(ctx context.Context, listID uuid.UUID) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE list_id = $1 ORDER BY ordinal, date_created`, listID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, MapError(rows.Err())
}

// Update implements store.TaskStore.
func (s *PostgresTaskStore) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET label = $2, is_completed = $3, is_starred = $4, details = $5,
		    reminder_date = $6, due_date = $7, last_modified = $8, category = $9
		WHERE id = $1`,
		t.ID, t.Label, t.IsCompleted, t.IsStarred, nullString(t.Details),
		nullTime(t.ReminderDate), nullTime(t.DueDate), t.LastModified.UTC(), nullString(t.Category))
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// UpdateCategory implements store.TaskStore.
func (s *PostgresTaskStore) UpdateCategory(
	ctx context.Context,
	id uuid.UUID,
	category string,
	lastModified time.Time,
) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET category = $2, last_modified = $3 WHERE id = $1`,
		id, category, lastModified.UTC())
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// MoveToList implements store.TaskStore.
func (s *PostgresTaskStore) MoveToList(
	ctx context.Context,
	id, newListID uuid.UUID,
	newOrdinal int,
	lastModified time.Time,
) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET list_id = $2, ordinal = $3, last_modified = $4 WHERE id = $1`,
		id, newListID, newOrdinal, lastModified.UTC())
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// DeleteCompleted implements store.TaskStore.
func (s *PostgresTaskStore) DeleteCompleted(ctx context.Context, listID uuid.UUID) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE list_id = $1 AND is_completed`, listID)
	if err != nil {
		return 0, MapError(err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t                 domain.Task
		details, category sql.NullString
		reminderDate, due sql.NullTime
	)
	err := row.Scan(&t.ID, &t.ListID, &t.Label, &t.IsCompleted, &t.IsStarred, &details,
		&reminderDate, &due, &t.DateCreated, &t.LastModified, &t.Ordinal, &category)
	if err != nil {
		return nil, err
	}
	t.Details = stringPtr(details)
	t.Category = stringPtr(category)
	t.ReminderDate = timePtr(reminderDate)
	t.DueDate = timePtr(due)
	return &t, nil
}
