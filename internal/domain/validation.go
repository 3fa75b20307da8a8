package domain

import "fmt"

// ValidationError reports a business-rule violation on a mutation. It carries
// the offending field and a stable code resolvable to a user-facing message.
type ValidationError struct {
	Field  string
	Code   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError with a default reason derived
// from the code. The i18n layer may render Code with a localized message.
func NewValidationError(field, code, reason string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Reason: reason}
}
