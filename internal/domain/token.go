package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenKind identifies one of the expirable token families.
type TokenKind string

const (
	TokenEmailVerification TokenKind = "email_verification"
	TokenPasswordReset     TokenKind = "password_reset"
	TokenListInvite        TokenKind = "list_invite"
)

// TokenKinds lists every expirable token family, in sweep order.
var TokenKinds = []TokenKind{TokenEmailVerification, TokenPasswordReset, TokenListInvite}

// ExpirableToken is the part of any secret token the expiry sweep needs.
type ExpirableToken struct {
	Kind       TokenKind `json:"kind"`
	Token      string    `json:"-"`
	ExpiryTime time.Time `json:"expiry_time"`
}

// Expired reports whether the token can no longer authorize anything at now.
// A token whose expiry equals now is already expired.
func (t ExpirableToken) Expired(now time.Time) bool {
	return !t.ExpiryTime.After(now)
}

// InviteToken grants whoever presents it membership of a list until it expires.
type InviteToken struct {
	Token      string    `json:"token"`
	ListID     uuid.UUID `json:"list_id"`
	ExpiryTime time.Time `json:"expiry_time"`
}

// Expired reports whether the invite can no longer be accepted at now.
func (t InviteToken) Expired(now time.Time) bool {
	return ExpirableToken{Kind: TokenListInvite, ExpiryTime: t.ExpiryTime}.Expired(now)
}
