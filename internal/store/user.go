package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// UserStore reads the public profile of users.
type UserStore interface {
	// GetProfile returns ErrUserNotFound if the user does not exist.
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}
