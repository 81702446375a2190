package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// ProfileHandler serves the /profile route.
type ProfileHandler struct {
	profiles ProfileService
	logger   *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles ProfileService, logger *slog.Logger) *ProfileHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProfileHandler")
	}
	return &ProfileHandler{profiles: profiles, logger: logger.With(slog.String("component", "profile_handler"))}
}

// GetProfile handles GET /profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
