package application

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the application services. The HTTP layer owns the
// single translation of these into response outcomes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrMeetupNotFound     = errors.New("meetup not found")
	ErrInvalidID          = errors.New("invalid meetup id")
	ErrAlreadyJoined      = errors.New("already joined")
	ErrMeetupFull         = errors.New("meetup is full")

	// ErrJoinConflict is the fallback when the atomic join was rejected but
	// the diagnostic read could not name a precondition; a concurrent writer
	// changed the row in between.
	ErrJoinConflict = errors.New("could not join meetup")
)

// ValidationError reports bad or missing input fields. Details maps field
// names to human-readable messages.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for f, msg := range e.Details {
		parts = append(parts, f+" "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Details: map[string]string{field: msg}}
}

// InvalidCategoriesError lists the offending category values alongside the
// allowed enumeration so clients can correct the request.
type InvalidCategoriesError struct {
	Invalid []string
	Allowed []string
}

func (e *InvalidCategoriesError) Error() string {
	return fmt.Sprintf("invalid categories: %s (allowed: %s)",
		strings.Join(e.Invalid, ", "), strings.Join(e.Allowed, ", "))
}
