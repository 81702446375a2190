package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	identity := &auth.Claims{UserID: caller}

	tests := []struct {
		name      string
		header    string
		verifyErr error
		wantCode  int
		wantUser  uuid.UUID
		wantSeen  []string
	}{
		{"bearer token", "Bearer tok-1", nil, http.StatusOK, caller, []string{"tok-1"}},
		{"scheme is case insensitive", "bearer tok-2", nil, http.StatusOK, caller, []string{"tok-2"}},
		{"no header", "", nil, http.StatusUnauthorized, uuid.Nil, nil},
		{"no scheme", "tok-3", nil, http.StatusUnauthorized, uuid.Nil, nil},
		{"blank token", "Bearer ", nil, http.StatusUnauthorized, uuid.Nil, nil},
		{"expired", "Bearer old", auth.ErrExpiredToken, http.StatusUnauthorized, uuid.Nil, []string{"old"}},
		{"refresh token", "Bearer refresh", auth.ErrWrongTokenType, http.StatusUnauthorized, uuid.Nil, []string{"refresh"}},
		{"verifier failure", "Bearer tok-4", errors.New("keyring unavailable"), http.StatusInternalServerError, uuid.Nil, []string{"tok-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verifier := &mocks.MockJWTService{Claims: identity, ValidateErr: tt.verifyErr}
			var seen uuid.UUID
			handler := NewAuthMiddleware(verifier).Authenticate(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					seen, _ = shared.UserIDFromContext(r.Context())
					w.WriteHeader(http.StatusOK)
				}),
			)

			req := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, seen)
			assert.Equal(t, tt.wantSeen, verifier.Validated)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"kind":"access_token_invalid"`)
			}
		})
	}
}
