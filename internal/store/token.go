package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TokenStore persists the expirable secret tokens: email verification,
// password reset and list invites.
type TokenStore interface {
	// ExpirableTokens returns every outstanding token of the kind.
	ExpirableTokens(ctx context.Context, kind domain.TokenKind) ([]domain.ExpirableToken, error)

	// InvalidateToken deletes a token by value. Deleting a missing token is not an error.
	InvalidateToken(ctx context.Context, kind domain.TokenKind, token string) error

	// CreateInvite stores a new invite token.
	CreateInvite(ctx context.Context, invite *domain.InviteToken) error

	// GetInvite returns ErrTokenNotFound if the invite does not exist.
	GetInvite(ctx context.Context, token string) (*domain.InviteToken, error)

	// ConsumeInvite deletes the invite and returns it, so at most one caller
	// can consume a given token. Returns ErrTokenNotFound if it does not exist.
	ConsumeInvite(ctx context.Context, token string) (*domain.InviteToken, error)

	// WithTxTokenStore returns a store that runs its queries on tx.
	WithTxTokenStore(tx *sql.Tx) TokenStore
}
