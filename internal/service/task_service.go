package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskInput carries the client-controlled fields of a task. Update replaces
// all of them.
type TaskInput struct {
	Label        string
	Details      *string
	ReminderDate *time.Time
	DueDate      *time.Time
	IsCompleted  bool
	IsStarred    bool
	Category     *string
	// LastModified is the client's edit time. Zero means the server clock.
	LastModified time.Time
}

// TaskService manages the tasks of shared lists. Every successful mutation
// emits an action event after its transaction commits.
type TaskService struct {
	tasks     store.TaskStore
	tx        store.Transactor
	gate      *MembershipGate
	sequencer *OrdinalSequencer
	emitter   events.EventEmitter
	now       func() time.Time
	logger    *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks store.TaskStore,
	tx store.Transactor,
	gate *MembershipGate,
	sequencer *OrdinalSequencer,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		tasks:     tasks,
		tx:        tx,
		gate:      gate,
		sequencer: sequencer,
		emitter:   emitter,
		now:       time.Now,
		logger:    logger.With("component", "task_service"),
	}
}

// List returns the tasks of a list in ordinal order.
func (s *TaskService) List(ctx context.Context, userID, listID uuid.UUID) ([]domain.Task, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByList(ctx, listID)
	if err != nil {
		return nil, NewServiceError("list_tasks", "failed to load tasks", err)
	}
	return tasks, nil
}

// Get returns one task of a list.
func (s *TaskService) Get(ctx context.Context, userID, listID, taskID uuid.UUID) (*domain.Task, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}
	return s.load(ctx, listID, taskID)
}

// load fetches taskID and checks that it belongs to listID.
func (s *TaskService) load(ctx context.Context, listID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, NewServiceError("get_task", "failed to load task", err)
	}
	if task.ListID != listID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// Create appends a task to the end of the list.
func (s *TaskService) Create(ctx context.Context, userID, listID uuid.UUID, in TaskInput) (*domain.Task, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          uuid.New(),
		ListID:      listID,
		DateCreated: s.now().UTC(),
	}
	in.applyTo(task)
	task.LastModified = stamp(in.LastModified, s.now)
	if err := task.Validate(); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTxTaskStore(tx)
		next, err := s.sequencer.Append(ctx, tasks, listID)
		if err != nil {
			return NewServiceError("create_task", "failed to position task", err)
		}
		task.Ordinal = next
		return NewServiceError("create_task", "failed to insert task", tasks.Create(ctx, task))
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.emitter, s.logger, events.NewTaskEvent(task, userID, domain.ActionAddTask))
	return task, nil
}

// Update replaces the task's fields. The emitted action is COMPLETE_TASK or
// STAR_TASK when that flag turned on, EDIT_TASK otherwise.
func (s *TaskService) Update(ctx context.Context, userID, listID, taskID uuid.UUID, in TaskInput) (*domain.Task, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}
	task, err := s.load(ctx, listID, taskID)
	if err != nil {
		return nil, err
	}

	action := domain.ActionEditTask
	switch {
	case in.IsCompleted && !task.IsCompleted:
		action = domain.ActionCompleteTask
	case in.IsStarred && !task.IsStarred:
		action = domain.ActionStarTask
	}

	previous := task.Label
	in.applyTo(task)
	task.LastModified = stamp(in.LastModified, s.now)
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, NewServiceError("update_task", "failed to update task", err)
	}

	event := events.NewTaskEvent(task, userID, action)
	event.PreviousLabel = previous
	emit(ctx, s.emitter, s.logger, event)
	return task, nil
}

// Delete removes a task. Remaining ordinals keep their gap; moves are
// relative, so gaps are harmless.
func (s *TaskService) Delete(ctx context.Context, userID, listID, taskID uuid.UUID) error {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return err
	}
	task, err := s.load(ctx, listID, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return NewServiceError("delete_task", "failed to delete task", err)
	}

	emit(ctx, s.emitter, s.logger, events.NewTaskEvent(task, userID, domain.ActionRemoveTask))
	return nil
}

// Move transfers a task to the end of another list the user can access.
// Members of the source list see MOVE_TASK, members of the destination ADD_TASK.
func (s *TaskService) Move(
	ctx context.Context,
	userID, listID, taskID, newListID uuid.UUID,
	lastModified time.Time,
) (*domain.Task, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return nil, err
	}
	if err := s.gate.EnsureAccess(ctx, userID, newListID); err != nil {
		return nil, err
	}
	task, err := s.load(ctx, listID, taskID)
	if err != nil {
		return nil, err
	}
	if newListID == listID {
		return task, nil
	}

	stamped := stamp(lastModified, s.now)
	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTxTaskStore(tx)
		next, err := s.sequencer.Append(ctx, tasks, newListID)
		if err != nil {
			return NewServiceError("move_task", "failed to position task", err)
		}
		if err := tasks.MoveToList(ctx, taskID, newListID, next, stamped); err != nil {
			return NewServiceError("move_task", "failed to move task", err)
		}
		task.Ordinal = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	moved := events.NewTaskEvent(task, userID, domain.ActionMoveTask)
	task.ListID = newListID
	task.LastModified = stamped

	logger.FromContextOrDefault(ctx, s.logger).Info("moved task",
		slog.String("task_id", taskID.String()),
		slog.String("from_list", listID.String()),
		slog.String("to_list", newListID.String()))
	emit(ctx, s.emitter, s.logger, moved)
	emit(ctx, s.emitter, s.logger, events.NewTaskEvent(task, userID, domain.ActionAddTask))
	return task, nil
}

// Reorder moves a task from fromIndex to toIndex within its list, stamping
// every shifted task with lastModified.
func (s *TaskService) Reorder(
	ctx context.Context,
	userID, listID, taskID uuid.UUID,
	fromIndex, toIndex int,
	lastModified time.Time,
) error {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return err
	}
	task, err := s.load(ctx, listID, taskID)
	if err != nil {
		return err
	}

	stamped := stamp(lastModified, s.now)
	var noop bool
	err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		shift, err := s.sequencer.Move(ctx, s.tasks.WithTxTaskStore(tx), listID, taskID, fromIndex, toIndex, stamped)
		noop = shift.IsNoop()
		return NewServiceError("reorder_task", "failed to reorder task", err)
	})
	if err != nil {
		return err
	}
	if noop {
		return nil
	}

	emit(ctx, s.emitter, s.logger, events.NewTaskEvent(task, userID, domain.ActionReorderTask))
	return nil
}

// ClearCompleted deletes every completed task of the list and returns how
// many were removed.
func (s *TaskService) ClearCompleted(ctx context.Context, userID, listID uuid.UUID) (int64, error) {
	if err := s.gate.EnsureAccess(ctx, userID, listID); err != nil {
		return 0, err
	}
	n, err := s.tasks.DeleteCompleted(ctx, listID)
	if err != nil {
		return 0, NewServiceError("clear_completed", "failed to delete completed tasks", err)
	}

	emit(ctx, s.emitter, s.logger, events.NewActionEvent(listID, nil, userID, domain.ActionClearCompletedTasks))
	return n, nil
}

func (in TaskInput) applyTo(t *domain.Task) {
	t.Label = in.Label
	t.Details = in.Details
	t.ReminderDate = in.ReminderDate
	t.DueDate = in.DueDate
	t.IsCompleted = in.IsCompleted
	t.IsStarred = in.IsStarred
	t.Category = in.Category
}

// stamp returns the caller's lastModified in UTC, or the server clock when
// the caller sent none.
func stamp(lastModified time.Time, now func() time.Time) time.Time {
	if lastModified.IsZero() {
		return now().UTC()
	}
	return lastModified.UTC()
}
