package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore persists tasks. Its OrdinalStore methods operate on the tasks of
// one list: the collection key is a list id and the moved id is a task id.
type TaskStore interface {
	OrdinalStore

	// Create inserts a task with the ordinal already assigned.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByList returns the list's tasks ordered by ordinal.
	ListByList(ctx context.Context, listID uuid.UUID) ([]domain.Task, error)

	// Update saves the client-editable fields and lastModified.
	// Ordinal and list are not changed.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateCategory sets the category and lastModified.
	UpdateCategory(ctx context.Context, id uuid.UUID, category string, lastModified time.Time) error

	// MoveToList re-parents the task, placing it at ordinal in the new list.
	MoveToList(ctx context.Context, id, newListID uuid.UUID, ordinal int, lastModified time.Time) error

	// Delete removes a task. Returns ErrTaskNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteCompleted removes every completed task of the list and returns how many.
	DeleteCompleted(ctx context.Context, listID uuid.UUID) (int64, error)

	// WithTxTaskStore returns a store that runs its queries on tx.
	WithTxTaskStore(tx *sql.Tx) TaskStore
}
