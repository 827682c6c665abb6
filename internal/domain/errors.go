package domain

import (
	"errors"
	"fmt"
)

// The circulation error taxonomy. Every service and repository failure
// is one of these (or wraps one of them); nothing is retried
// internally and nothing is swallowed.
var (
	// ErrNotFound: the referenced book or issue record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict: availability exhausted, a duplicate active loan for
	// the same (user, book), or a quantity edit that would strand
	// copies already on loan. Callers may retry after re-reading state.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState: the record is not in the state the transition
	// requires (returning a RETURNED record, approving a non-REQUESTED
	// one).
	ErrInvalidState = errors.New("invalid state")
)

// ValidationError reports malformed input. It is never retried; the
// caller must correct the request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
