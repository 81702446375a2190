package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListHandler_CreateList(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID := uuid.New()
	color := domain.ColorGreen
	created := &domain.ListWithPrefs{
		List:  domain.TaskList{ID: uuid.New(), OwnerID: userID, Title: "Groceries", Color: &color},
		Prefs: domain.ListPrefs{UserID: userID, Ordinal: 3, SortType: domain.SortOrdinal},
	}
	a.lists.On("Create", mock.Anything, userID, mock.MatchedBy(func(in service.ListInput) bool {
		return in.Title == "Groceries" && in.Color != nil && *in.Color == domain.ColorGreen && in.Icon == nil
	})).Return(created, nil).Once()

	rr := a.do(http.MethodPost, "/api/lists", `{"title":"Groceries","color":"GREEN"}`, userID)

	requireStatus(t, http.StatusCreated, rr)
	var got domain.ListWithPrefs
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, created.List.ID, got.List.ID)
	assert.Equal(t, 3, got.Prefs.Ordinal)
	a.lists.AssertExpectations(t)
}

func TestListHandler_CreateListMissingTitle(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID := uuid.New()
	a.lists.On("Create", mock.Anything, userID, mock.Anything).Return(nil, domain.ErrListTitleRequired)

	rr := a.do(http.MethodPost, "/api/lists", `{"title":""}`, userID)

	requireStatus(t, http.StatusBadRequest, rr)
	assert.Equal(t, "list_title_required", decodeError(t, rr).Kind)
}

func TestListHandler_Unauthenticated(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	rr := a.do(http.MethodGet, "/api/lists", "", uuid.Nil)

	requireStatus(t, http.StatusUnauthorized, rr)
	assert.Equal(t, "access_token_invalid", decodeError(t, rr).Kind)
	a.lists.AssertNotCalled(t, "ListForUser", mock.Anything, mock.Anything)
}

func TestListHandler_ListListsEmpty(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID := uuid.New()
	a.lists.On("ListForUser", mock.Anything, userID).Return(nil, nil)

	rr := a.do(http.MethodGet, "/api/lists", "", userID)

	requireStatus(t, http.StatusOK, rr)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestListHandler_GetList(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID := uuid.New(), uuid.New()
	a.lists.On("Get", mock.Anything, userID, listID).Return(nil, domain.ErrListAccessDenied)

	rr := a.do(http.MethodGet, "/api/lists/"+listID.String(), "", userID)
	requireStatus(t, http.StatusForbidden, rr)
	assert.Equal(t, "list_access_denied", decodeError(t, rr).Kind)

	rr = a.do(http.MethodGet, "/api/lists/not-a-uuid", "", userID)
	requireStatus(t, http.StatusBadRequest, rr)
	assert.Equal(t, "Invalid listID", decodeError(t, rr).Error)
}

func TestListHandler_DeleteList(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	owner, member, listID := uuid.New(), uuid.New(), uuid.New()
	a.lists.On("Delete", mock.Anything, owner, listID).Return(nil)
	a.lists.On("Delete", mock.Anything, member, listID).Return(domain.ErrListOwnershipDenied)

	requireStatus(t, http.StatusNoContent, a.do(http.MethodDelete, "/api/lists/"+listID.String(), "", owner))
	requireStatus(t, http.StatusForbidden, a.do(http.MethodDelete, "/api/lists/"+listID.String(), "", member))
}

func TestListHandler_UpdatePrefs(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID := uuid.New(), uuid.New()
	want := service.PrefsInput{SortType: domain.SortLabel, SortDirection: domain.SortDescending, ShowIndexNumbers: true}
	a.lists.On("UpdatePrefs", mock.Anything, userID, listID, want).
		Return(&domain.ListPrefs{ListID: listID, UserID: userID, SortType: domain.SortLabel}, nil)

	rr := a.do(http.MethodPut, "/api/lists/"+listID.String()+"/prefs",
		`{"sort_type":"LABEL","sort_direction":"DESCENDING","show_index_numbers":true}`, userID)
	requireStatus(t, http.StatusOK, rr)

	rr = a.do(http.MethodPut, "/api/lists/"+listID.String()+"/prefs", `{"sort_direction":"DESCENDING"}`, userID)
	requireStatus(t, http.StatusBadRequest, rr)
	assert.Equal(t, "input_invalid", decodeError(t, rr).Kind)
}

func TestListHandler_ReorderLists(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID := uuid.New(), uuid.New()
	a.lists.On("Reorder", mock.Anything, userID, listID, 4, 0, edited).Return(nil).Once()

	rr := a.do(http.MethodPost, "/api/lists/reorder",
		`{"list_id":"`+listID.String()+`","from_index":4,"to_index":0,"last_modified":"2024-05-01T11:59:00Z"}`, userID)
	requireStatus(t, http.StatusNoContent, rr)

	rr = a.do(http.MethodPost, "/api/lists/reorder",
		`{"list_id":"`+listID.String()+`","from_index":-1,"to_index":0,"last_modified":"2024-05-01T11:59:00Z"}`, userID)
	requireStatus(t, http.StatusBadRequest, rr)

	rr = a.do(http.MethodPost, "/api/lists/reorder",
		`{"list_id":"`+listID.String()+`","from_index":4,"to_index":0}`, userID)
	requireStatus(t, http.StatusBadRequest, rr)
	a.lists.AssertExpectations(t)
}

func TestListHandler_ServiceFailureIsGeneric(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID, listID := uuid.New(), uuid.New()
	a.lists.On("Members", mock.Anything, userID, listID).
		Return(nil, service.NewServiceError("list_members", "failed to load members", errors.New("conn reset")))

	rr := a.do(http.MethodGet, "/api/lists/"+listID.String()+"/members", "", userID)

	requireStatus(t, http.StatusInternalServerError, rr)
	assert.NotContains(t, rr.Body.String(), "conn reset")
}
