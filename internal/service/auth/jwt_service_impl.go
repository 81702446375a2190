package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

const (
	minSecretLength = 32
	defaultLeeway   = 2 * time.Minute
)

// accessClaims is the wire form of an access token.
type accessClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type hs256Service struct {
	key      []byte
	issuer   string
	lifetime time.Duration
	leeway   time.Duration
	now      func() time.Time
}

var _ JWTService = (*hs256Service)(nil)

// NewJWTService creates an HS256 service from cfg.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if cfg.Issuer == "" {
		return nil, errors.New("jwt issuer must be set")
	}
	return &hs256Service{
		key:      []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		lifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		leeway:   defaultLeeway,
		now:      time.Now,
	}, nil
}

func (s *hs256Service) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	now := s.now()
	claims := accessClaims{
		Type: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign access token", "error", err, "user_id", userID)
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *hs256Service) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	var claims accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	default:
		log.Debug("access token rejected", "error", err)
		return nil, ErrInvalidToken
	}

	if claims.Type != TokenTypeAccess {
		log.Debug("access token rejected", "token_type", claims.Type)
		return nil, ErrWrongTokenType
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Debug("access token rejected: subject is not a user id")
		return nil, ErrInvalidToken
	}

	out := &Claims{
		UserID:    userID,
		TokenType: claims.Type,
		Issuer:    claims.Issuer,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
