package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestExpirableToken_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"in the future", now.Add(time.Minute), false},
		{"exactly now", now, true},
		{"in the past", now.Add(-time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := ExpirableToken{Kind: TokenPasswordReset, Token: "x", ExpiryTime: tt.expiry}
			assert.Equal(t, tt.want, tok.Expired(now))

			invite := InviteToken{Token: "x", ListID: uuid.New(), ExpiryTime: tt.expiry}
			assert.Equal(t, tt.want, invite.Expired(now))
		})
	}
}
