package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoSession          = errors.New("no active session")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrConfirmRequired    = errors.New("confirmation required")

	// ErrValidation is the base of all user-input failures. Wrap it with
	// NewValidationError so callers can match the class and the UI can show
	// the reason.
	ErrValidation = errors.New("validation failed")
)

// NewValidationError wraps ErrValidation with a user-facing reason.
func NewValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
