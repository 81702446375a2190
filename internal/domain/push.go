package domain

import (
	"time"

	"github.com/google/uuid"
)

// PushToken is a device registration for push delivery. The token value is
// unique; re-linking it moves it to another user.
type PushToken struct {
	UserID      uuid.UUID `json:"user_id"`
	Token       string    `json:"-"`
	LastUpdated time.Time `json:"last_updated"`
}
