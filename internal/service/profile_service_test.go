package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Get(t *testing.T) {
	users := new(mocks.MockUserStore)
	svc := NewProfileService(users, discardLogger)
	userID := uuid.New()
	users.On("GetProfile", mock.Anything, userID).
		Return(&domain.Profile{ID: userID, DisplayName: "Ada"}, nil).Once()

	got, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	users.AssertExpectations(t)
}

func TestProfileService_GetErrors(t *testing.T) {
	users := new(mocks.MockUserStore)
	svc := NewProfileService(users, discardLogger)
	missing, broken := uuid.New(), uuid.New()
	users.On("GetProfile", mock.Anything, missing).Return(nil, store.ErrUserNotFound)
	users.On("GetProfile", mock.Anything, broken).Return(nil, errors.New("connection reset"))

	_, err := svc.Get(context.Background(), missing)
	assert.Equal(t, domain.KindUserNotFound, domain.KindOf(err))

	_, err = svc.Get(context.Background(), broken)
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get_profile", se.Operation)
}
