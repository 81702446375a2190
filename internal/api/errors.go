package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// errorMapping is how one error kind is shown to clients.
type errorMapping struct {
	status  int
	message string
}

// errorTable is the single place that decides the HTTP status and safe
// message of every domain error kind.
var errorTable = map[domain.ErrorKind]errorMapping{
	domain.KindInputInvalid:        {http.StatusBadRequest, "Invalid request"},
	domain.KindEmailInvalid:        {http.StatusBadRequest, "Invalid email"},
	domain.KindPasswordInvalid:     {http.StatusBadRequest, "Invalid password"},
	domain.KindUserNotFound:        {http.StatusNotFound, "User not found"},
	domain.KindAccessTokenInvalid:  {http.StatusUnauthorized, "Invalid token"},
	domain.KindVerifyTokenNotFound: {http.StatusNotFound, "Verification token not found"},
	domain.KindVerifyTokenExpired:  {http.StatusGone, "Verification token expired"},
	domain.KindResetTokenNotFound:  {http.StatusNotFound, "Reset token not found"},
	domain.KindResetTokenExpired:   {http.StatusGone, "Reset token expired"},
	domain.KindInviteTokenNotFound: {http.StatusNotFound, "Invite not found"},
	domain.KindInviteTokenExpired:  {http.StatusGone, "Invite expired"},
	domain.KindListTitleRequired:   {http.StatusBadRequest, "List title is required"},
	domain.KindListNotFound:        {http.StatusNotFound, "List not found"},
	domain.KindTaskNotFound:        {http.StatusNotFound, "Task not found"},
	domain.KindPushTokenRequired:   {http.StatusBadRequest, "Push token is required"},
	domain.KindRateLimitExceeded:   {http.StatusTooManyRequests, "Rate limit exceeded"},
	domain.KindListAccessDenied:    {http.StatusForbidden, "You do not have access to this list"},
	domain.KindListOwnershipDenied: {http.StatusForbidden, "Only the list owner can do this"},
	domain.KindUserIsListOwner:     {http.StatusConflict, "The list owner cannot leave the list"},
	domain.KindAlreadyMember:       {http.StatusConflict, "Already a member of this list"},
	domain.KindInvalidReorder:      {http.StatusBadRequest, "Invalid reorder"},
}

var unknownError = errorMapping{http.StatusInternalServerError, "An unexpected error occurred"}

// classify returns the kind, status and safe message for err.
func classify(err error) (domain.ErrorKind, errorMapping) {
	kind := domain.KindOf(err)
	if kind == domain.KindUnknown && isAuthError(err) {
		kind = domain.KindAccessTokenInvalid
	}
	if m, ok := errorTable[kind]; ok {
		return kind, m
	}
	return domain.KindUnknown, unknownError
}

func isAuthError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrTokenNotYetValid) ||
		errors.Is(err, auth.ErrWrongTokenType) ||
		errors.Is(err, auth.ErrMissingToken)
}

// MapErrorToStatusCode returns the HTTP status for err.
func MapErrorToStatusCode(err error) int {
	_, m := classify(err)
	return m.status
}

// GetSafeErrorMessage returns a message for err that reveals nothing internal.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return unknownError.message
	}
	_, m := classify(err)
	return m.message
}

// HandleAPIError writes the error response for err. customMessage, when
// set, replaces the table message for client-caused (4xx) errors only.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, customMessage string) {
	kind, m := classify(err)
	message := m.message
	if customMessage != "" && m.status < http.StatusInternalServerError {
		message = customMessage
	}
	shared.RespondWithErrorAndLog(w, r, m.status, kind.String(), message, err)
}

// SanitizeValidationError renders validator failures as "Invalid <field>:
// <reason>" without exposing struct names.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return "Invalid " + strings.ToLower(fe.Field()) + ": " + validationTagMessage(fe.Tag())
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte":
		return "must not be negative"
	default:
		return "validation failed"
	}
}
