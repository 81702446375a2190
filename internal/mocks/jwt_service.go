package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockJWTService returns canned results and records the tokens it was asked
// to validate.
type MockJWTService struct {
	Token       string
	Err         error
	Claims      *auth.Claims
	ValidateErr error

	Validated []string
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(context.Context, uuid.UUID) (string, error) {
	return m.Token, m.Err
}

func (m *MockJWTService) ValidateToken(_ context.Context, tokenString string) (*auth.Claims, error) {
	m.Validated = append(m.Validated, tokenString)
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	return m.Claims, nil
}
