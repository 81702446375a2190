package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/mock"
)

type mockListService struct{ mock.Mock }

func (m *mockListService) Create(ctx context.Context, userID uuid.UUID, in service.ListInput) (*domain.ListWithPrefs, error) {
	args := m.Called(ctx, userID, in)
	if l, ok := args.Get(0).(*domain.ListWithPrefs); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) Get(ctx context.Context, userID, listID uuid.UUID) (*domain.TaskList, error) {
	args := m.Called(ctx, userID, listID)
	if l, ok := args.Get(0).(*domain.TaskList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ListWithPrefs, error) {
	args := m.Called(ctx, userID)
	if l, ok := args.Get(0).([]domain.ListWithPrefs); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) Update(ctx context.Context, userID, listID uuid.UUID, in service.ListInput) (*domain.TaskList, error) {
	args := m.Called(ctx, userID, listID, in)
	if l, ok := args.Get(0).(*domain.TaskList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	return m.Called(ctx, userID, listID).Error(0)
}

func (m *mockListService) GetPrefs(ctx context.Context, userID, listID uuid.UUID) (*domain.ListPrefs, error) {
	args := m.Called(ctx, userID, listID)
	if p, ok := args.Get(0).(*domain.ListPrefs); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) UpdatePrefs(ctx context.Context, userID, listID uuid.UUID, in service.PrefsInput) (*domain.ListPrefs, error) {
	args := m.Called(ctx, userID, listID, in)
	if p, ok := args.Get(0).(*domain.ListPrefs); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) Reorder(ctx context.Context, userID, listID uuid.UUID, fromIndex, toIndex int, lastModified time.Time) error {
	return m.Called(ctx, userID, listID, fromIndex, toIndex, lastModified).Error(0)
}

func (m *mockListService) Members(ctx context.Context, userID, listID uuid.UUID) ([]domain.Profile, error) {
	args := m.Called(ctx, userID, listID)
	if p, ok := args.Get(0).([]domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMembershipService struct{ mock.Mock }

func (m *mockMembershipService) RequestInvite(ctx context.Context, userID, listID uuid.UUID) (*domain.InviteToken, error) {
	args := m.Called(ctx, userID, listID)
	if i, ok := args.Get(0).(*domain.InviteToken); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMembershipService) GetListByInvite(ctx context.Context, token string) (*domain.TaskList, error) {
	args := m.Called(ctx, token)
	if l, ok := args.Get(0).(*domain.TaskList); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMembershipService) AcceptInvite(ctx context.Context, userID uuid.UUID, token string) (*domain.ListWithPrefs, error) {
	args := m.Called(ctx, userID, token)
	if l, ok := args.Get(0).(*domain.ListWithPrefs); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMembershipService) Leave(ctx context.Context, userID, listID uuid.UUID) error {
	return m.Called(ctx, userID, listID).Error(0)
}

type mockTaskService struct{ mock.Mock }

func (m *mockTaskService) List(ctx context.Context, userID, listID uuid.UUID) ([]domain.Task, error) {
	args := m.Called(ctx, userID, listID)
	if t, ok := args.Get(0).([]domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskService) Get(ctx context.Context, userID, listID, taskID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, userID, listID, taskID)
	if t, ok := args.Get(0).(*domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskService) Create(ctx context.Context, userID, listID uuid.UUID, in service.TaskInput) (*domain.Task, error) {
	args := m.Called(ctx, userID, listID, in)
	if t, ok := args.Get(0).(*domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskService) Update(ctx context.Context, userID, listID, taskID uuid.UUID, in service.TaskInput) (*domain.Task, error) {
	args := m.Called(ctx, userID, listID, taskID, in)
	if t, ok := args.Get(0).(*domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskService) Delete(ctx context.Context, userID, listID, taskID uuid.UUID) error {
	return m.Called(ctx, userID, listID, taskID).Error(0)
}

func (m *mockTaskService) Move(ctx context.Context, userID, listID, taskID, newListID uuid.UUID, lastModified time.Time) (*domain.Task, error) {
	args := m.Called(ctx, userID, listID, taskID, newListID, lastModified)
	if t, ok := args.Get(0).(*domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskService) Reorder(ctx context.Context, userID, listID, taskID uuid.UUID, fromIndex, toIndex int, lastModified time.Time) error {
	return m.Called(ctx, userID, listID, taskID, fromIndex, toIndex, lastModified).Error(0)
}

func (m *mockTaskService) ClearCompleted(ctx context.Context, userID, listID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, listID)
	return args.Get(0).(int64), args.Error(1)
}

type mockProfileService struct{ mock.Mock }

func (m *mockProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*domain.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPushTokenService struct{ mock.Mock }

func (m *mockPushTokenService) Link(ctx context.Context, userID uuid.UUID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *mockPushTokenService) Invalidate(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
