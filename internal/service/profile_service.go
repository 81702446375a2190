package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// ProfileService reads the caller's own profile. Profiles are owned by the
// identity system; this service never writes them.
type ProfileService struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(users store.UserStore, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{users: users, logger: logger.With("component", "profile_service")}
}

// Get returns the profile of userID.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, NewServiceError("get_profile", "failed to load profile", err)
	}
	return profile, nil
}
