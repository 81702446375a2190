package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// constraint (foreign key, check, not null) before or while being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrUserNotFound  = fmt.Errorf("%w: user", ErrNotFound)
	ErrListNotFound  = fmt.Errorf("%w: list", ErrNotFound)
	ErrTaskNotFound  = fmt.Errorf("%w: task", ErrNotFound)
	ErrPrefsNotFound = fmt.Errorf("%w: list prefs", ErrNotFound)
	ErrTokenNotFound = fmt.Errorf("%w: token", ErrNotFound)
	ErrAlreadyMember = fmt.Errorf("%w: membership", ErrDuplicate)

	// ErrUnknownTokenKind is returned for a token kind the store has no table for.
	ErrUnknownTokenKind = errors.New("unknown token kind")
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError adds entity and operation context to a store failure.
type StoreError struct {
	Entity    string // e.g. "task", "list"
	Operation string // e.g. "create", "reorder"
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
