package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// ListHandler serves the /lists routes.
type ListHandler struct {
	lists  ListService
	logger *slog.Logger
}

// NewListHandler creates a ListHandler.
func NewListHandler(lists ListService, logger *slog.Logger) *ListHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ListHandler")
	}
	return &ListHandler{lists: lists, logger: logger.With(slog.String("component", "list_handler"))}
}

// ListLists handles GET /lists.
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	lists, err := h.lists.ListForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if lists == nil {
		lists = []domain.ListWithPrefs{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lists)
}

// CreateList handles POST /lists.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req ListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.lists.Create(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("list created",
		slog.String("list_id", created.List.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// GetList handles GET /lists/{listID}.
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	list, err := h.lists.Get(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// UpdateList handles PUT /lists/{listID}.
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	var req ListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	list, err := h.lists.Update(r.Context(), userID, ids[0], req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// DeleteList handles DELETE /lists/{listID}.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	if err := h.lists.Delete(r.Context(), userID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPrefs handles GET /lists/{listID}/prefs.
func (h *ListHandler) GetPrefs(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	prefs, err := h.lists.GetPrefs(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, prefs)
}

// UpdatePrefs handles PUT /lists/{listID}/prefs.
func (h *ListHandler) UpdatePrefs(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	var req PrefsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	prefs, err := h.lists.UpdatePrefs(r.Context(), userID, ids[0], service.PrefsInput{
		SortType:         domain.SortType(req.SortType),
		SortDirection:    domain.SortDirection(req.SortDirection),
		ShowIndexNumbers: req.ShowIndexNumbers,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, prefs)
}

// ReorderLists handles POST /lists/reorder.
func (h *ListHandler) ReorderLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req ReorderListRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.lists.Reorder(r.Context(), userID, req.ListID, req.FromIndex, req.ToIndex, req.LastModified); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers handles GET /lists/{listID}/members.
func (h *ListHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, ids, ok := requireUserAndPath(w, r, "listID")
	if !ok {
		return
	}
	members, err := h.lists.Members(r.Context(), userID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if members == nil {
		members = []domain.Profile{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, members)
}
