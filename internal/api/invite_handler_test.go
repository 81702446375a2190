package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInviteHandler_CreateInvite(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	owner, listID := uuid.New(), uuid.New()
	expiry := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	a.membership.On("RequestInvite", mock.Anything, owner, listID).
		Return(&domain.InviteToken{Token: "abc123", ListID: listID, ExpiryTime: expiry}, nil)

	rr := a.do(http.MethodPost, "/api/lists/"+listID.String()+"/invites", "", owner)

	requireStatus(t, http.StatusCreated, rr)
	var got InviteResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "abc123", got.Token)
	assert.True(t, expiry.Equal(got.ExpiryTime))
}

func TestInviteHandler_PreviewInvite(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	userID := uuid.New()
	a.membership.On("GetListByInvite", mock.Anything, "fresh").Return(&domain.TaskList{Title: "Groceries"}, nil)
	a.membership.On("GetListByInvite", mock.Anything, "stale").Return(nil, domain.ErrInviteTokenExpired)

	rr := a.do(http.MethodGet, "/api/invites/fresh", "", userID)
	requireStatus(t, http.StatusOK, rr)
	assert.Contains(t, rr.Body.String(), "Groceries")

	rr = a.do(http.MethodGet, "/api/invites/stale", "", userID)
	requireStatus(t, http.StatusGone, rr)
	assert.Equal(t, "invite_token_expired", decodeError(t, rr).Kind)
}

func TestInviteHandler_AcceptInvite(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	joiner := uuid.New()
	listID := uuid.New()
	a.membership.On("AcceptInvite", mock.Anything, joiner, "good").Return(&domain.ListWithPrefs{
		List:  domain.TaskList{ID: listID},
		Prefs: domain.ListPrefs{ListID: listID, UserID: joiner, Ordinal: 2},
	}, nil).Once()
	a.membership.On("AcceptInvite", mock.Anything, joiner, "used").Return(nil, domain.ErrInviteTokenNotFound)
	a.membership.On("AcceptInvite", mock.Anything, joiner, "mine").Return(nil, domain.ErrAlreadyMember)

	requireStatus(t, http.StatusOK, a.do(http.MethodPost, "/api/invites/good/accept", "", joiner))
	requireStatus(t, http.StatusNotFound, a.do(http.MethodPost, "/api/invites/used/accept", "", joiner))
	requireStatus(t, http.StatusConflict, a.do(http.MethodPost, "/api/invites/mine/accept", "", joiner))
}

func TestInviteHandler_LeaveList(t *testing.T) {
	t.Parallel()

	a := newTestAPI()
	owner, member, listID := uuid.New(), uuid.New(), uuid.New()
	a.membership.On("Leave", mock.Anything, member, listID).Return(nil)
	a.membership.On("Leave", mock.Anything, owner, listID).Return(domain.ErrUserIsListOwner)

	requireStatus(t, http.StatusNoContent, a.do(http.MethodPost, "/api/lists/"+listID.String()+"/leave", "", member))

	rr := a.do(http.MethodPost, "/api/lists/"+listID.String()+"/leave", "", owner)
	requireStatus(t, http.StatusConflict, rr)
	assert.Equal(t, "user_is_list_owner", decodeError(t, rr).Kind)
}
