// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Services return these; handlers translate them to status codes and
// keep the messages that reach callers free of internal detail.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a referenced entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrForbidden signals the caller lacks the role or ownership an
	// operation requires. Surfaced to callers as a generic denial.
	ErrForbidden = errors.New("access denied")

	// ErrConflict signals a duplicate membership or assignment.
	ErrConflict = errors.New("already exists")
)

// ValidationError carries every violated constraint of a request, not just
// the first one found.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidation builds a ValidationError from one or more violations
func NewValidation(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// InvalidTransitionError is returned when a status change is not in the
// transition table. Both states are named so the caller sees what was refused.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
