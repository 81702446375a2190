package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// getPathUUID parses the named chi path parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, domain.Wrap(domain.KindInputInvalid, paramName+" is required", nil)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Wrap(domain.KindInputInvalid, paramName+" has invalid format", err)
	}
	return id, nil
}

// requireUser returns the authenticated caller, writing a 401 when the
// request carries none.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrAccessTokenInvalid, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// requireUserAndPath returns the caller and the UUIDs of the named path
// parameters, in order. It writes the error response and returns false if
// any is missing or malformed.
func requireUserAndPath(w http.ResponseWriter, r *http.Request, params ...string) (uuid.UUID, []uuid.UUID, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}

	ids := make([]uuid.UUID, len(params))
	for i, name := range params {
		id, err := getPathUUID(r, name)
		if err != nil {
			logger.FromContext(r.Context()).Warn("invalid path parameter",
				slog.String("param_name", name),
				slog.String("value", chi.URLParam(r, name)))
			HandleAPIError(w, r, err, "Invalid "+name)
			return uuid.Nil, nil, false
		}
		ids[i] = id
	}
	return userID, ids, true
}

// decodeAndValidate reads a JSON body into req and validates its tags,
// writing a 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	log := logger.FromContext(r.Context())
	if err := shared.DecodeJSON(r, req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, domain.Wrap(domain.KindInputInvalid, "invalid request format", err), "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, domain.Wrap(domain.KindInputInvalid, "validation failed", err), SanitizeValidationError(err))
		return false
	}
	return true
}
