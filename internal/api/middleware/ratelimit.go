package middleware

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/redis"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (redis.Decision, error)
}

// RateLimit rejects callers that exceed the limiter's budget with 429.
// Requests are keyed by authenticated user, or by client address before
// authentication. If the limiter itself fails the request is let through.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)
			decision, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limiter unavailable, allowing request",
					slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(ceilSeconds(decision.ResetAfter)))
			if !decision.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(max(ceilSeconds(decision.RetryAfter), 1)))
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
					domain.KindRateLimitExceeded.String(), "Rate limit exceeded", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

func rateLimitKey(r *http.Request) string {
	if userID, ok := shared.UserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}
