package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskHandler serves the /lists/{listID}/tasks routes.
type TaskHandler struct {
	tasks  TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{tasks: tasks, logger: logger.With(slog.String("component", "task_handler"))}
}

// ListTasks handles GET /lists/{listID}/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	tasks, err := h.tasks.List(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateTask handles POST /lists/{listID}/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	task, err := h.tasks.Create(r.Context(), userID, ids[0], req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// GetTask handles GET /lists/{listID}/tasks/{taskID}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID", "taskID")
	if !ok {
		return
	}
	task, err := h.tasks.Get(r.Context(), userID, ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /lists/{listID}/tasks/{taskID}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID", "taskID")
	if !ok {
		return
	}
	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	task, err := h.tasks.Update(r.Context(), userID, ids[0], ids[1], req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /lists/{listID}/tasks/{taskID}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID", "taskID")
	if !ok {
		return
	}
	if err := h.tasks.Delete(r.Context(), userID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveTask handles POST /lists/{listID}/tasks/{taskID}/move.
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID", "taskID")
	if !ok {
		return
	}
	var req MoveTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	task, err := h.tasks.Move(r.Context(), userID, ids[0], ids[1], req.ListID, req.LastModified)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ReorderTask handles POST /lists/{listID}/tasks/{taskID}/reorder.
func (h *TaskHandler) ReorderTask(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID", "taskID")
	if !ok {
		return
	}
	var req ReorderTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.tasks.Reorder(r.Context(), userID, ids[0], ids[1], req.FromIndex, req.ToIndex, req.LastModified); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearCompleted handles POST /lists/{listID}/tasks/clear.
func (h *TaskHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	n, err := h.tasks.ClearCompleted(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ClearCompletedResponse{Deleted: n})
}
