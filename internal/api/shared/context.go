package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of request-scoped values set by the middleware.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated caller's uuid.UUID.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request's trace id.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID stores a fresh trace id in ctx.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the trace id stored in ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithUserID stores the authenticated caller in ctx.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext returns the authenticated caller. ok is false when the
// request did not pass the auth middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// newTraceID returns a random 32 character hex id.
func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
