package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTokenExpirySweeper(t *testing.T) {
	tokens := new(mocks.MockTokenStore)
	tokens.On("ExpirableTokens", mock.Anything, domain.TokenEmailVerification).Return([]domain.ExpirableToken{
		{Kind: domain.TokenEmailVerification, Token: "verify-old", ExpiryTime: fixedNow.Add(-time.Hour)},
		{Kind: domain.TokenEmailVerification, Token: "verify-new", ExpiryTime: fixedNow.Add(time.Hour)},
	}, nil)
	tokens.On("ExpirableTokens", mock.Anything, domain.TokenPasswordReset).Return([]domain.ExpirableToken{
		{Kind: domain.TokenPasswordReset, Token: "reset-now", ExpiryTime: fixedNow},
	}, nil)
	tokens.On("ExpirableTokens", mock.Anything, domain.TokenListInvite).Return([]domain.ExpirableToken{
		{Kind: domain.TokenListInvite, Token: "invite-old", ExpiryTime: fixedNow.Add(-time.Minute)},
	}, nil)
	tokens.On("InvalidateToken", mock.Anything, domain.TokenEmailVerification, "verify-old").Return(nil).Once()
	tokens.On("InvalidateToken", mock.Anything, domain.TokenPasswordReset, "reset-now").Return(nil).Once()
	tokens.On("InvalidateToken", mock.Anything, domain.TokenListInvite, "invite-old").Return(nil).Once()

	sweeper := NewTokenExpirySweeper(tokens, discardLogger)
	sweeper.now = clock

	assert.NoError(t, sweeper.Sweep(context.Background()))
	tokens.AssertExpectations(t)
	tokens.AssertNotCalled(t, "InvalidateToken", mock.Anything, domain.TokenEmailVerification, "verify-new")
}

func TestTokenExpirySweeper_ContinuesAfterFailure(t *testing.T) {
	boom := errors.New("boom")
	tokens := new(mocks.MockTokenStore)
	tokens.On("ExpirableTokens", mock.Anything, domain.TokenEmailVerification).Return(nil, boom)
	tokens.On("ExpirableTokens", mock.Anything, domain.TokenPasswordReset).Return([]domain.ExpirableToken(nil), nil)
	tokens.On("ExpirableTokens", mock.Anything, domain.TokenListInvite).Return([]domain.ExpirableToken{
		{Kind: domain.TokenListInvite, Token: "invite-old", ExpiryTime: fixedNow.Add(-time.Minute)},
	}, nil)
	tokens.On("InvalidateToken", mock.Anything, domain.TokenListInvite, "invite-old").Return(nil).Once()

	sweeper := NewTokenExpirySweeper(tokens, discardLogger)
	sweeper.now = clock

	err := sweeper.Sweep(context.Background())
	assert.ErrorIs(t, err, boom)
	tokens.AssertExpectations(t)
}
