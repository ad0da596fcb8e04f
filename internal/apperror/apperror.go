package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrRelationMismatch = errors.New("relation mismatch")
	ErrInternal         = errors.New("internal error")
)

// Details maps a field path (e.g. "originalIdea" or "[2].score") to the
// messages describing why that field was rejected.
type Details map[string][]string

// Add appends a message for field.
func (d Details) Add(field, message string) {
	d[field] = append(d[field], message)
}

type AppError struct {
	Err     error   // sentinel used for classification
	Message string  // Human-readable error message, safe to return to callers
	Details Details // Optional: field-level validation failures
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing record. The message is the one callers see,
// e.g. NotFound("Idea") → "Idea not found".
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// ValidationFailed reports a rejected payload together with every failing field.
func ValidationFailed(details Details) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "Validation failed",
		Details: details,
	}
}

// InvalidField is shorthand for a validation failure on a single field.
func InvalidField(field, message string) *AppError {
	return ValidationFailed(Details{field: {message}})
}

// RelationMismatch reports that a record exists but is attached to a
// different parent than the one addressed.
// HTTP handlers map this to 400 Bad Request.
func RelationMismatch(message string) *AppError {
	return &AppError{
		Err:     ErrRelationMismatch,
		Message: message,
	}
}

// Internal wraps an unexpected failure. The cause stays reachable through
// errors.Is/As but never becomes part of Message.
func Internal(err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrInternal, err),
		Message: "Internal server error",
	}
}
