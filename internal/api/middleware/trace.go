package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// Trace assigns every request a trace id and stores a logger tagged with it
// in the request context. It belongs first in the chain.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)
			w.Header().Set("X-Trace-ID", traceID)

			log := base.With(slog.String("trace_id", traceID))
			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
		})
	}
}
