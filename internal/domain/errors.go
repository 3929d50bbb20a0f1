package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers every lookup by an unknown identifier.
	ErrNotFound = errors.New("not found")
	// ErrSeatTaken signals a (flight, row, seat) uniqueness conflict. It is
	// raised by the storage layer off the unique index, so two concurrent
	// bookings of the same seat can never both succeed.
	ErrSeatTaken = errors.New("seat is already taken")
	// ErrEmailTaken signals a duplicate registration.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrForbidden means the caller is authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries field-addressable messages so handlers can render
// a structured 400 body instead of a flat string.
type ValidationError struct {
	fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	if e.fields == nil {
		e.fields = make(map[string]string)
	}
	e.fields[field] = message
}

func (e *ValidationError) Addf(field, format string, args ...interface{}) {
	e.Add(field, fmt.Sprintf(format, args...))
}

func (e *ValidationError) Empty() bool {
	return len(e.fields) == 0
}

// Fields returns the per-field messages. The map must not be mutated.
func (e *ValidationError) Fields() map[string]string {
	return e.fields
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ErrOrNil collapses an empty error to nil so callers can return it directly.
func (e *ValidationError) ErrOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
