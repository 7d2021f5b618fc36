// Package common defines shared constants and sentinel errors used across
// notekeeper components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorOperationFailed = errors.New("operation failed")

	// Authorization errors. A missing note and a note owned by someone else
	// are deliberately indistinguishable to the caller.
	ErrorNotFoundOrForbidden = errors.New("not found or forbidden")

	// Registration errors.
	ErrorDuplicateUsername = errors.New("username already exists")

	// Session/token errors.
	ErrorInvalidToken   = errors.New("invalid token")
	ErrorSessionExpired = errors.New("session expired")
)

// ValidationError reports every missing or malformed field of a request
// payload at once, rather than failing on the first one.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a problem with the named field and returns the receiver so
// checks can be chained.
func (e *ValidationError) Add(field, reason string) *ValidationError {
	e.Fields[field] = reason
	return e
}

// Empty reports whether no field problems were recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for f, r := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, r))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
