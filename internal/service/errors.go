package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	// Operation is the use case that failed (e.g. "create_task", "accept_invite")
	Operation string
	// Message is a human-readable description of the failure
	Message string
	// Err is the underlying error
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// storeKinds maps store sentinels onto the domain error callers see.
var storeKinds = []struct {
	storeErr  error
	domainErr *domain.Error
}{
	{store.ErrListNotFound, domain.ErrListNotFound},
	{store.ErrTaskNotFound, domain.ErrTaskNotFound},
	{store.ErrUserNotFound, domain.ErrUserNotFound},
	{store.ErrPrefsNotFound, domain.ErrListAccessDenied},
	{store.ErrAlreadyMember, domain.ErrAlreadyMember},
	{store.ErrTokenNotFound, domain.ErrInviteTokenNotFound},
}

// NewServiceError classifies err for callers. Domain errors pass through
// unchanged, known store sentinels become the matching domain error, and
// anything else is wrapped in a ServiceError.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	for _, k := range storeKinds {
		if errors.Is(err, k.storeErr) {
			return domain.Wrap(k.domainErr.Kind, k.domainErr.Message, err)
		}
	}
	if errors.Is(err, store.ErrInvalidEntity) {
		return domain.Wrap(domain.KindInputInvalid, message, err)
	}

	return &ServiceError{Operation: operation, Message: message, Err: err}
}
