package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testAPI is a router over mocked services.
type testAPI struct {
	lists      *mockListService
	membership *mockMembershipService
	tasks      *mockTaskService
	pushTokens *mockPushTokenService
	profiles   *mockProfileService
	router     chi.Router
}

func newTestAPI() *testAPI {
	a := &testAPI{
		lists:      new(mockListService),
		membership: new(mockMembershipService),
		tasks:      new(mockTaskService),
		pushTokens: new(mockPushTokenService),
		profiles:   new(mockProfileService),
	}
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, Handlers{
			Lists:      NewListHandler(a.lists, discardLogger),
			Invites:    NewInviteHandler(a.membership, discardLogger),
			Tasks:      NewTaskHandler(a.tasks, discardLogger),
			PushTokens: NewPushTokenHandler(a.pushTokens, discardLogger),
			Profile:    NewProfileHandler(a.profiles, discardLogger),
		})
	})
	a.router = r
	return a
}

// do sends a request as userID; uuid.Nil sends it unauthenticated.
func (a *testAPI) do(method, path, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != uuid.Nil {
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func requireStatus(t *testing.T, want int, rr *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, rr.Code, rr.Body.String())
}

