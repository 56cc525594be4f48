package domain

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the failure classes the core can surface.
// Callers (HTTP layer, CLI) map kinds to their own error surfaces;
// the core itself never retries and never partially succeeds.
type ErrorKind string

const (
	// KindInvalidInput marks rejected inputs: negative amounts, missing
	// required fields, unknown scenario types.
	KindInvalidInput ErrorKind = "invalid_input"

	// KindNotFound marks missing upstream data, e.g. no snapshot or no
	// simulation history for a user.
	KindNotFound ErrorKind = "not_found"
)

// Error is a discriminated error value carrying a taxonomy kind and an
// explanatory message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports kind equality, so errors.Is(err, &Error{Kind: k}) matches any
// error of that kind regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Invalidf creates an invalid-input error.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf creates a not-found error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from an error chain. Errors that do not
// carry a *Error anywhere in the chain report an empty kind.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsInvalidInput reports whether err is an invalid-input error.
func IsInvalidInput(err error) bool {
	return KindOf(err) == KindInvalidInput
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
