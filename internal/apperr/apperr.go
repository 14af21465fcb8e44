// Package apperr defines the error taxonomy shared by the service and API
// layers. Services return these; the API layer maps kinds to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and retry semantics.
type Kind int

const (
	// KindValidation is bad input: mismatched split sums, invalid participant,
	// non-member actor. Terminal for the request, never retried.
	KindValidation Kind = iota

	// KindNotFound is a referenced entity that is absent or inaccessible.
	KindNotFound

	// KindConflict is a concurrent-mutation conflict (writer lock contention).
	KindConflict

	// KindUnauthorized is a missing or invalid credential.
	KindUnauthorized

	// KindStore is a transactional storage failure. The whole operation was
	// rolled back; the caller may retry.
	KindStore
)

// Error carries a kind, a caller-facing message, and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a validation error with the given message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// Validationf formats a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error with the given message.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Conflict returns a conflict error wrapping the underlying cause.
func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Msg: msg, Err: err}
}

// Unauthorized returns an authentication error with the given message.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Store wraps a storage failure. The message stays opaque to callers; the
// cause is preserved for logs.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Msg: "storage failure", Err: err}
}

// KindOf extracts the Kind from an error chain. Unclassified errors report
// KindStore so they surface as opaque internal failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Message extracts the caller-facing message from an error chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}
