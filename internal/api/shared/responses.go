package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	// Kind is the stable machine-readable error kind, when there is one.
	Kind    string `json:"kind,omitempty"`
	Code    int    `json:"-"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes data as JSON with the given status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// RespondWithError writes an error body carrying the request's trace id.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	traceID := GetTraceID(r.Context())
	logger.FromContext(r.Context()).Debug("sending error response",
		slog.Int("status_code", status),
		slog.String("kind", kind),
		slog.String("message", message),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		Kind:    kind,
		Code:    status,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes a safe error body and logs the redacted
// cause. 5xx responses log at ERROR, 429 at WARN, other 4xx at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	kind string,
	userMessage string,
	err error,
) {
	attrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("kind", kind),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		Kind:    kind,
		Code:    status,
		TraceID: GetTraceID(r.Context()),
	})
}
