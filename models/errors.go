package models

import "errors"

var (
	// ErrNotFound means no document with the given id exists.
	ErrNotFound = errors.New("document not found")

	// ErrForbidden means the document exists but belongs to another user.
	ErrForbidden = errors.New("not authorized")

	// ErrStorageUnavailable means the document store failed or the circuit
	// breaker guarding it is open.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError reports the first required-field rule a payload failed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func requiredField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
