package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var edited = time.Date(2024, 5, 1, 11, 59, 0, 0, time.UTC)

func tasksPath(listID uuid.UUID, rest string) string {
	return "/api/lists/" + listID.String() + "/tasks" + rest
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID := uuid.New(), uuid.New()
	task := &domain.Task{ID: uuid.New(), ListID: listID, Label: "Milk", Ordinal: 5}
	a.tasks.On("Create", mock.Anything, userID, listID, mock.MatchedBy(func(in service.TaskInput) bool {
		return in.Label == "Milk" && in.IsStarred && in.DueDate != nil && in.LastModified.Equal(edited)
	})).Return(task, nil).Once()

	rr := a.do(http.MethodPost, tasksPath(listID, ""),
		`{"label":"Milk","is_starred":true,"due_date":"2024-06-01T09:00:00Z","last_modified":"2024-05-01T11:59:00Z"}`, userID)

	requireStatus(t, http.StatusCreated, rr)
	var got domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 5, got.Ordinal)
	a.tasks.AssertExpectations(t)
}

func TestTaskHandler_CreateTaskRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	rr := a.do(http.MethodPost, tasksPath(uuid.New(), ""), `{"label":"Milk","ordinal":0}`, uuid.New())

	requireStatus(t, http.StatusBadRequest, rr)
	assert.Equal(t, "Invalid request format", decodeError(t, rr).Error)
	a.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_WritesRequireLastModified(t *testing.T) {
	t.Parallel()

	listID, taskID := uuid.New(), uuid.New()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"create", http.MethodPost, tasksPath(listID, ""), `{"label":"Milk"}`},
		{"update", http.MethodPut, tasksPath(listID, "/"+taskID.String()), `{"label":"Milk"}`},
		{"move", http.MethodPost, tasksPath(listID, "/"+taskID.String()+"/move"), `{"list_id":"` + uuid.NewString() + `"}`},
		{"reorder", http.MethodPost, tasksPath(listID, "/"+taskID.String()+"/reorder"), `{"from_index":1,"to_index":0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAPI()
			rr := a.do(tt.method, tt.path, tt.body, uuid.New())

			requireStatus(t, http.StatusBadRequest, rr)
			assert.Equal(t, "input_invalid", decodeError(t, rr).Kind)
			assert.Empty(t, a.tasks.Calls)
		})
	}
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID, taskID := uuid.New(), uuid.New(), uuid.New()
	a.tasks.On("Get", mock.Anything, userID, listID, taskID).Return(nil, domain.ErrTaskNotFound)

	rr := a.do(http.MethodGet, tasksPath(listID, "/"+taskID.String()), "", userID)

	requireStatus(t, http.StatusNotFound, rr)
	assert.Equal(t, "task_not_found", decodeError(t, rr).Kind)

	rr = a.do(http.MethodGet, tasksPath(listID, "/nope"), "", userID)
	requireStatus(t, http.StatusBadRequest, rr)
	assert.Equal(t, "Invalid taskID", decodeError(t, rr).Error)
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID, taskID := uuid.New(), uuid.New(), uuid.New()
	a.tasks.On("Update", mock.Anything, userID, listID, taskID, mock.MatchedBy(func(in service.TaskInput) bool {
		return in.IsCompleted && in.Category == nil && in.LastModified.Equal(edited)
	})).Return(&domain.Task{ID: taskID, ListID: listID, Label: "Milk", IsCompleted: true}, nil)

	rr := a.do(http.MethodPut, tasksPath(listID, "/"+taskID.String()),
		`{"label":"Milk","is_completed":true,"last_modified":"2024-05-01T11:59:00Z"}`, userID)

	requireStatus(t, http.StatusOK, rr)
	a.tasks.AssertExpectations(t)
}

func TestTaskHandler_MoveTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID, taskID, dest := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	a.tasks.On("Move", mock.Anything, userID, listID, taskID, dest, edited).
		Return(&domain.Task{ID: taskID, ListID: dest, Ordinal: 9}, nil).Once()

	rr := a.do(http.MethodPost, tasksPath(listID, "/"+taskID.String()+"/move"),
		`{"list_id":"`+dest.String()+`","last_modified":"2024-05-01T11:59:00Z"}`, userID)
	requireStatus(t, http.StatusOK, rr)

	rr = a.do(http.MethodPost, tasksPath(listID, "/"+taskID.String()+"/move"), `{}`, userID)
	requireStatus(t, http.StatusBadRequest, rr)
	a.tasks.AssertExpectations(t)
}

func TestTaskHandler_ReorderTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID, taskID := uuid.New(), uuid.New(), uuid.New()
	a.tasks.On("Reorder", mock.Anything, userID, listID, taskID, 3, 1, edited).Return(nil).Once()

	rr := a.do(http.MethodPost, tasksPath(listID, "/"+taskID.String()+"/reorder"),
		`{"from_index":3,"to_index":1,"last_modified":"2024-05-01T11:59:00Z"}`, userID)
	requireStatus(t, http.StatusNoContent, rr)
	a.tasks.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID, taskID := uuid.New(), uuid.New(), uuid.New()
	a.tasks.On("Delete", mock.Anything, userID, listID, taskID).Return(nil)

	requireStatus(t, http.StatusNoContent, a.do(http.MethodDelete, tasksPath(listID, "/"+taskID.String()), "", userID))
}

func TestTaskHandler_ClearCompleted(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID := uuid.New(), uuid.New()
	a.tasks.On("ClearCompleted", mock.Anything, userID, listID).Return(int64(4), nil)

	rr := a.do(http.MethodPost, tasksPath(listID, "/clear"), "", userID)

	requireStatus(t, http.StatusOK, rr)
	assert.JSONEq(t, `{"deleted":4}`, rr.Body.String())
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID := uuid.New(), uuid.New()
	a.tasks.On("List", mock.Anything, userID, listID).Return([]domain.Task{
		{ID: uuid.New(), ListID: listID, Label: "A", Ordinal: 0},
		{ID: uuid.New(), ListID: listID, Label: "B", Ordinal: 1},
	}, nil)

	rr := a.do(http.MethodGet, tasksPath(listID, ""), "", userID)

	requireStatus(t, http.StatusOK, rr)
	var got []domain.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
