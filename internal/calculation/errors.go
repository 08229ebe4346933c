package calculation

import (
	"errors"
	"fmt"
)

// ValidationError reports caller-supplied data that violates a documented
// bound. It is the only error kind the engine raises: every well-formed
// input produces a result, so a ValidationError is always recoverable by
// correcting the named field and resubmitting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
