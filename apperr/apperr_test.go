package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationErrorJoinsViolations(t *testing.T) {
	err := NewValidation("title too long", "bad due date")
	if !strings.Contains(err.Error(), "title too long") || !strings.Contains(err.Error(), "bad due date") {
		t.Errorf("Error() = %q, want both violations present", err.Error())
	}
	if !IsValidation(err) {
		t.Error("IsValidation rejected a ValidationError")
	}
	if !IsValidation(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsValidation rejected a wrapped ValidationError")
	}
}

func TestInvalidTransitionNamesBothStates(t *testing.T) {
	err := &InvalidTransitionError{From: "To Do", To: "Shipped"}
	msg := err.Error()
	if !strings.Contains(msg, "To Do") || !strings.Contains(msg, "Shipped") {
		t.Errorf("Error() = %q, want both states named", msg)
	}
}

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading task: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped ErrNotFound did not match")
	}
	if errors.Is(wrapped, ErrForbidden) {
		t.Error("ErrNotFound matched ErrForbidden")
	}
}
