package apperr

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when the input fails domain validation.
var ErrValidation = errors.New("validation failed")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates that the actor may not perform the mutation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a lost race or a uniqueness conflict (HTTP 409).
// It is the only kind a caller is expected to retry.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition indicates that a lifecycle trigger was invoked outside its precondition.
var ErrInvalidTransition = errors.New("invalid transition")

// TransitionError describes a rejected lifecycle trigger.
type TransitionError struct {
	Entity  string // "load" or "assignment"
	Current string
	Trigger string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s %s in status %q", e.Trigger, e.Entity, e.Current)
}

// Is makes errors.Is(err, ErrInvalidTransition) hold.
func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// Transition builds a TransitionError.
func Transition(entity, current, trigger string) error {
	return &TransitionError{Entity: entity, Current: current, Trigger: trigger}
}

// Validation wraps ErrValidation with the offending field.
func Validation(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
