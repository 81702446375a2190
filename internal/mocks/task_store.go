package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/domain/ordinal"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore is a testify mock of store.TaskStore.
type MockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) LockCollection(ctx context.Context, listID uuid.UUID) error {
	return m.Called(ctx, listID).Error(0)
}

func (m *MockTaskStore) MaxOrdinal(ctx context.Context, listID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, listID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockTaskStore) ApplyOrdinalShift(
	ctx context.Context,
	listID, taskID uuid.UUID,
	shift ordinal.Shift,
	lastModified time.Time,
) error {
	return m.Called(ctx, listID, taskID, shift, lastModified).Error(0)
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskStore) ListByList(ctx context.Context, listID uuid.UUID) ([]domain.Task, error) {
	args := m.Called(ctx, listID)
	if t, ok := args.Get(0).([]domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskStore) UpdateCategory(ctx context.Context, id uuid.UUID, category string, lastModified time.Time) error {
	return m.Called(ctx, id, category, lastModified).Error(0)
}

func (m *MockTaskStore) MoveToList(
	ctx context.Context,
	id, newListID uuid.UUID,
	newOrdinal int,
	lastModified time.Time,
) error {
	return m.Called(ctx, id, newListID, newOrdinal, lastModified).Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskStore) DeleteCompleted(ctx context.Context, listID uuid.UUID) (int64, error) {
	args := m.Called(ctx, listID)
	return args.Get(0).(int64), args.Error(1)
}

// WithTxTaskStore returns the mock itself.
func (m *MockTaskStore) WithTxTaskStore(*sql.Tx) store.TaskStore {
	return m
}
