// Package auth resolves bearer access tokens to caller identities.
// Tokens are issued by the account service; this package only signs tokens
// for tests and local tooling.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenTypeAccess is the only token type accepted on API requests.
const TokenTypeAccess = "access"

// JWTService signs and verifies HS256 access tokens.
type JWTService interface {
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken returns ErrExpiredToken, ErrTokenNotYetValid,
	// ErrWrongTokenType or ErrInvalidToken when the token cannot be used.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified identity carried by an access token.
type Claims struct {
	// UserID is parsed from the sub claim.
	UserID    uuid.UUID
	TokenType string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
