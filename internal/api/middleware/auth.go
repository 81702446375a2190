package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// AuthMiddleware resolves bearer access tokens to the calling user.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate rejects requests without a valid access token and stores the
// caller's user id in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	kind := domain.KindAccessTokenInvalid.String()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, kind, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, kind, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, kind, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithError(w, r, http.StatusUnauthorized, kind, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError,
					domain.KindUnknown.String(), "Authentication error")
			}
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		log := logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.String()))
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
	})
}
