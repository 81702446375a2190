package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PushTokenService registers and unregisters device push tokens. Tokens are
// keyed by value: linking a token another user had moves it to the caller.
type PushTokenService struct {
	tokens store.PushTokenStore
	now    func() time.Time
	logger *slog.Logger
}

// NewPushTokenService creates a PushTokenService.
func NewPushTokenService(tokens store.PushTokenStore, logger *slog.Logger) *PushTokenService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PushTokenService{
		tokens: tokens,
		now:    time.Now,
		logger: logger.With("component", "push_token_service"),
	}
}

// Link associates token with userID.
func (s *PushTokenService) Link(ctx context.Context, userID uuid.UUID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrPushTokenRequired
	}

	pt := &domain.PushToken{UserID: userID, Token: token, LastUpdated: s.now().UTC()}
	if err := s.tokens.Upsert(ctx, pt); err != nil {
		return NewServiceError("link_push_token", "failed to store push token", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("linked push token",
		slog.String("user_id", userID.String()),
		slog.String("token", redact.Token(token)))
	return nil
}

// Invalidate forgets token. Unknown tokens are not an error.
func (s *PushTokenService) Invalidate(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrPushTokenRequired
	}
	if err := s.tokens.Delete(ctx, token); err != nil {
		return NewServiceError("invalidate_push_token", "failed to delete push token", err)
	}
	return nil
}
