package model

import "errors"

var (
	// ErrNotFound is returned when an entity is required to exist and does not.
	ErrNotFound = errors.New("entity was not found")

	// ErrAlreadyExists is returned when a unique entity (e.g. a user email) is created twice.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidCredentials is returned when an email/password pair does not match a user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a request that cannot be served as given.
// Reason is machine readable and is returned to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// NewValidationError builds a ValidationError with the given reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}
