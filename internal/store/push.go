package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// PushTokenStore persists device tokens. Every mutation is keyed by the
// token value, never by row identity, so that linking, invalidation and
// pruning can race without touching unrelated rows.
type PushTokenStore interface {
	// TokensForUsers returns the tokens of every given user.
	TokensForUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.PushToken, error)

	// Upsert links the token to token.UserID, moving it from any previous owner.
	Upsert(ctx context.Context, token *domain.PushToken) error

	// Delete removes a token by value. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error
}
