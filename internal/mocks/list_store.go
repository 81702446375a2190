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

// MockListStore is a testify mock of store.ListStore.
type MockListStore struct {
	mock.Mock
}

var _ store.ListStore = (*MockListStore)(nil)

func (m *MockListStore) LockCollection(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockListStore) MaxOrdinal(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockListStore) ApplyOrdinalShift(
	ctx context.Context,
	userID, listID uuid.UUID,
	shift ordinal.Shift,
	lastModified time.Time,
) error {
	return m.Called(ctx, userID, listID, shift, lastModified).Error(0)
}

func (m *MockListStore) Create(ctx context.Context, list *domain.TaskList) error {
	return m.Called(ctx, list).Error(0)
}

func (m *MockListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskList, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*domain.TaskList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ListWithPrefs, error) {
	args := m.Called(ctx, userID)
	if l, ok := args.Get(0).([]domain.ListWithPrefs); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListStore) Update(ctx context.Context, list *domain.TaskList) error {
	return m.Called(ctx, list).Error(0)
}

func (m *MockListStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockListStore) IsOwner(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, listID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockListStore) HasAccess(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, listID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockListStore) AddMember(ctx context.Context, prefs *domain.ListPrefs) error {
	return m.Called(ctx, prefs).Error(0)
}

func (m *MockListStore) RemoveMember(ctx context.Context, listID, userID uuid.UUID) error {
	return m.Called(ctx, listID, userID).Error(0)
}

func (m *MockListStore) GetPrefs(ctx context.Context, listID, userID uuid.UUID) (*domain.ListPrefs, error) {
	args := m.Called(ctx, listID, userID)
	if p, ok := args.Get(0).(*domain.ListPrefs); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListStore) UpdatePrefs(ctx context.Context, prefs *domain.ListPrefs) error {
	return m.Called(ctx, prefs).Error(0)
}

func (m *MockListStore) MemberIDs(ctx context.Context, listID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, listID)
	if ids, ok := args.Get(0).([]uuid.UUID); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListStore) Members(ctx context.Context, listID uuid.UUID) ([]domain.Profile, error) {
	args := m.Called(ctx, listID)
	if p, ok := args.Get(0).([]domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTxListStore returns the mock itself.
func (m *MockListStore) WithTxListStore(*sql.Tx) store.ListStore {
	return m
}
