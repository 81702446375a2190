package classification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/job"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// DefaultTimeout bounds one classifier call when none is configured.
const DefaultTimeout = 10 * time.Second

// Predictor creates and runs category prediction jobs.
type Predictor struct {
	classifier Classifier
	lists      store.ListStore
	tasks      store.TaskStore
	emitter    events.EventEmitter
	timeout    time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewPredictor creates a predictor. Each classifier call is bounded by timeout.
func NewPredictor(
	classifier Classifier,
	lists store.ListStore,
	tasks store.TaskStore,
	emitter events.EventEmitter,
	timeout time.Duration,
	logger *slog.Logger,
) *Predictor {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Predictor{
		classifier: classifier,
		lists:      lists,
		tasks:      tasks,
		emitter:    emitter,
		timeout:    timeout,
		now:        time.Now,
		logger:     logger.With("component", "category_predictor"),
	}
}

var _ job.Factory = (*Predictor)(nil)

// CreateJob implements job.Factory. Only inserts and updates that change the
// label of a task without a category produce a job; whether the list classifies at all is
// checked when the job runs.
func (p *Predictor) CreateJob(_ context.Context, event *events.ActionEvent) (job.Job, error) {
	if event.Action != domain.ActionAddTask && !event.LabelChanged() {
		return nil, nil
	}
	if event.TaskCategory != "" {
		return nil, nil
	}
	taskID, ok := event.TaskUUID()
	if !ok {
		return nil, nil
	}

	return job.NewFunc(job.TypeCategoryPrediction, func(ctx context.Context) error {
		return p.Predict(ctx, taskID, event.ActorID)
	}), nil
}

// Predict classifies the task's label, stores the category and emits
// PREDICT_TASK_CATEGORY. A task that was deleted, already categorized, or
// sits on a list without a classifier is left alone.
func (p *Predictor) Predict(ctx context.Context, taskID, actorID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, p.logger).With(slog.String("task_id", taskID.String()))

	task, err := p.tasks.GetByID(ctx, taskID)
	if errors.Is(err, store.ErrTaskNotFound) {
		log.Debug("task gone before prediction")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load task for prediction: %w", err)
	}
	if !task.NeedsCategory() {
		return nil
	}

	list, err := p.lists.GetByID(ctx, task.ListID)
	if errors.Is(err, store.ErrListNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load list for prediction: %w", err)
	}
	if !list.ClassifiesTasks() {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	category, err := p.classifier.Classify(callCtx, task.Label)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to classify task %s: %w", taskID, err)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		log.Warn("classifier returned an empty category")
		return nil
	}

	now := p.now().UTC()
	if err := p.tasks.UpdateCategory(ctx, task.ID, category, now); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil
		}
		return fmt.Errorf("failed to store predicted category: %w", err)
	}
	task.Category = &category
	task.LastModified = now

	log.Info("predicted task category", slog.String("category", category))

	if err := p.emitter.EmitEvent(ctx, events.NewTaskEvent(task, actorID, domain.ActionPredictTaskCategory)); err != nil {
		log.Error("failed to emit prediction event", slog.String("error", err.Error()))
	}
	return nil
}
