package api

import (
	"log/slog"
	"net/http"
)

// PushTokenHandler serves the /push-tokens routes.
type PushTokenHandler struct {
	tokens PushTokenService
	logger *slog.Logger
}

// NewPushTokenHandler creates a PushTokenHandler.
func NewPushTokenHandler(tokens PushTokenService, logger *slog.Logger) *PushTokenHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PushTokenHandler")
	}
	return &PushTokenHandler{tokens: tokens, logger: logger.With(slog.String("component", "push_token_handler"))}
}

// Link handles POST /push-tokens.
func (h *PushTokenHandler) Link(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req PushTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.tokens.Link(r.Context(), userID, req.Token); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Invalidate handles POST /push-tokens/invalidate.
func (h *PushTokenHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	var req PushTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.tokens.Invalidate(r.Context(), req.Token); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
