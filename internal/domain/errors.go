// Package domain defines the core entities of shared task lists and the
// error kinds the rest of the application reports to callers.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure that is expected and reportable to a caller.
type ErrorKind int

// Known error kinds. KindUnknown marks failures that are not part of the
// domain vocabulary, typically persistence or transport errors.
const (
	KindUnknown ErrorKind = iota
	KindInputInvalid
	KindEmailInvalid
	KindPasswordInvalid
	KindUserNotFound
	KindAccessTokenInvalid
	KindVerifyTokenNotFound
	KindVerifyTokenExpired
	KindResetTokenNotFound
	KindResetTokenExpired
	KindInviteTokenNotFound
	KindInviteTokenExpired
	KindListTitleRequired
	KindListNotFound
	KindTaskNotFound
	KindPushTokenRequired
	KindRateLimitExceeded
	KindListAccessDenied
	KindListOwnershipDenied
	KindUserIsListOwner
	KindAlreadyMember
	KindInvalidReorder
)

var kindNames = map[ErrorKind]string{
	KindUnknown:             "unknown",
	KindInputInvalid:        "input_invalid",
	KindEmailInvalid:        "email_invalid",
	KindPasswordInvalid:     "password_invalid",
	KindUserNotFound:        "user_not_found",
	KindAccessTokenInvalid:  "access_token_invalid",
	KindVerifyTokenNotFound: "verify_token_not_found",
	KindVerifyTokenExpired:  "verify_token_expired",
	KindResetTokenNotFound:  "reset_token_not_found",
	KindResetTokenExpired:   "reset_token_expired",
	KindInviteTokenNotFound: "invite_token_not_found",
	KindInviteTokenExpired:  "invite_token_expired",
	KindListTitleRequired:   "list_title_required",
	KindListNotFound:        "list_not_found",
	KindTaskNotFound:        "task_not_found",
	KindPushTokenRequired:   "push_token_required",
	KindRateLimitExceeded:   "rate_limit_exceeded",
	KindListAccessDenied:    "list_access_denied",
	KindListOwnershipDenied: "list_ownership_denied",
	KindUserIsListOwner:     "user_is_list_owner",
	KindAlreadyMember:       "already_member",
	KindInvalidReorder:      "invalid_reorder",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a domain failure tagged with its kind.
// Two Errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a domain Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first domain Error in err's chain,
// or KindUnknown.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Sentinel errors for each kind, for use with errors.Is.
var (
	ErrInputInvalid        = NewError(KindInputInvalid, "input invalid")
	ErrEmailInvalid        = NewError(KindEmailInvalid, "email invalid")
	ErrPasswordInvalid     = NewError(KindPasswordInvalid, "password invalid")
	ErrUserNotFound        = NewError(KindUserNotFound, "user not found")
	ErrAccessTokenInvalid  = NewError(KindAccessTokenInvalid, "access token invalid")
	ErrVerifyTokenNotFound = NewError(KindVerifyTokenNotFound, "verification token not found")
	ErrVerifyTokenExpired  = NewError(KindVerifyTokenExpired, "verification token expired")
	ErrResetTokenNotFound  = NewError(KindResetTokenNotFound, "reset token not found")
	ErrResetTokenExpired   = NewError(KindResetTokenExpired, "reset token expired")
	ErrInviteTokenNotFound = NewError(KindInviteTokenNotFound, "invite token not found")
	ErrInviteTokenExpired  = NewError(KindInviteTokenExpired, "invite token expired")
	ErrListTitleRequired   = NewError(KindListTitleRequired, "list title required")
	ErrListNotFound        = NewError(KindListNotFound, "list not found")
	ErrTaskNotFound        = NewError(KindTaskNotFound, "task not found")
	ErrPushTokenRequired   = NewError(KindPushTokenRequired, "push token required")
	ErrRateLimitExceeded   = NewError(KindRateLimitExceeded, "rate limit exceeded")
	ErrListAccessDenied    = NewError(KindListAccessDenied, "list access denied")
	ErrListOwnershipDenied = NewError(KindListOwnershipDenied, "list ownership denied")
	ErrUserIsListOwner     = NewError(KindUserIsListOwner, "user is list owner")
	ErrAlreadyMember       = NewError(KindAlreadyMember, "user is already a member")
	ErrInvalidReorder      = NewError(KindInvalidReorder, "invalid reorder")
)
