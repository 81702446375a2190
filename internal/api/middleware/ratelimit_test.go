package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	decision redis.Decision
	err      error
	keys     []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (redis.Decision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

func serve(limiter Limiter, r *http.Request) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr, reached
}

func TestRateLimit_Allowed(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	limiter := &fakeLimiter{decision: redis.Decision{Allowed: true, Limit: 60, Remaining: 59, ResetAfter: 800 * time.Millisecond}}
	req := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
	req = req.WithContext(shared.WithUserID(req.Context(), userID))

	rr, reached := serve(limiter, req)

	assert.True(t, reached)
	assert.Equal(t, "60", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "59", rr.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Reset"))
	require.Len(t, limiter.keys, 1)
	assert.Equal(t, "user:"+userID.String(), limiter.keys[0])
}

func TestRateLimit_Exceeded(t *testing.T) {
	t.Parallel()

	limiter := &fakeLimiter{decision: redis.Decision{Limit: 60, RetryAfter: 1500 * time.Millisecond, ResetAfter: 59 * time.Second}}
	req := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	rr, reached := serve(limiter, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("Retry-After"))
	assert.Equal(t, "59", rr.Header().Get("X-RateLimit-Reset"))
	assert.Contains(t, rr.Body.String(), `"kind":"rate_limit_exceeded"`)
	assert.Equal(t, []string{"addr:203.0.113.7"}, limiter.keys)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	t.Parallel()

	limiter := &fakeLimiter{err: errors.New("redis down")}
	rr, reached := serve(limiter, httptest.NewRequest(http.MethodGet, "/api/lists", nil))

	assert.True(t, reached)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
