package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// InviteHandler serves invite and membership routes.
type InviteHandler struct {
	membership MembershipService
	logger     *slog.Logger
}

// NewInviteHandler creates an InviteHandler.
func NewInviteHandler(membership MembershipService, logger *slog.Logger) *InviteHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for InviteHandler")
	}
	return &InviteHandler{membership: membership, logger: logger.With(slog.String("component", "invite_handler"))}
}

// CreateInvite handles POST /lists/{listID}/invites.
func (h *InviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	invite, err := h.membership.RequestInvite(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, InviteResponse{
		Token:      invite.Token,
		ListID:     invite.ListID,
		ExpiryTime: invite.ExpiryTime,
	})
}

// PreviewInvite handles GET /invites/{token}.
func (h *InviteHandler) PreviewInvite(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	token, ok := inviteToken(w, r)
	if !ok {
		return
	}
	list, err := h.membership.GetListByInvite(r.Context(), token)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// AcceptInvite handles POST /invites/{token}/accept.
func (h *InviteHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	token, ok := inviteToken(w, r)
	if !ok {
		return
	}
	joined, err := h.membership.AcceptInvite(r.Context(), userID, token)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("invite not accepted",
			slog.String("token", redact.Token(token)),
			slog.String("kind", domain.KindOf(err).String()))
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, joined)
}

// LeaveList handles POST /lists/{listID}/leave.
func (h *InviteHandler) LeaveList(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	if err := h.membership.Leave(r.Context(), userID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func inviteToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := strings.TrimSpace(chi.URLParam(r, "token"))
	if token == "" {
		HandleAPIError(w, r, domain.ErrInviteTokenNotFound, "")
		return "", false
	}
	return token, true
}
