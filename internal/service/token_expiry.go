package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TokenExpirySweeper deletes expired email-verification, password-reset and
// list-invite tokens. Expiry is enforced where tokens are used; the sweep
// only keeps the tables small.
type TokenExpirySweeper struct {
	tokens store.TokenStore
	now    func() time.Time
	logger *slog.Logger
}

// NewTokenExpirySweeper creates a sweeper.
func NewTokenExpirySweeper(tokens store.TokenStore, logger *slog.Logger) *TokenExpirySweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenExpirySweeper{
		tokens: tokens,
		now:    time.Now,
		logger: logger.With("component", "token_expiry_sweeper"),
	}
}

// Sweep invalidates every expired token of every kind. A failure on one kind
// or token does not stop the others; the failures are joined in the result.
func (s *TokenExpirySweeper) Sweep(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()
	var errs []error

	for _, kind := range domain.TokenKinds {
		tokens, err := s.tokens.ExpirableTokens(ctx, kind)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to list %s tokens: %w", kind, err))
			continue
		}

		removed := 0
		for _, t := range tokens {
			if !t.Expired(now) {
				continue
			}
			if err := s.tokens.InvalidateToken(ctx, kind, t.Token); err != nil {
				errs = append(errs, fmt.Errorf("failed to invalidate %s token: %w", kind, err))
				continue
			}
			removed++
		}

		if removed > 0 {
			log.Info("invalidated expired tokens",
				slog.String("kind", string(kind)),
				slog.Int("count", removed))
		}
	}

	return errors.Join(errs...)
}
