// Package apperr defines the application error taxonomy shared by services
// and handlers. Services return these; the HTTP layer maps them to status
// codes and never leaks Internal details to the caller.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Invalid      Kind = iota // malformed or missing input
	Unauthorized             // missing or bad credentials
	Forbidden                // authenticated but not allowed
	NotFound                 // referenced entity absent (client error)
	Conflict                 // caller's view of server state is stale
	Precondition             // entity exists but is in the wrong state
	Internal                 // a write that should have succeeded did not
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// ErrStale is the conflict returned when a submitted cart no longer matches
// live stock or price. The client must refresh, not retry blindly.
var ErrStale = New(Conflict, "order information needs to be updated")

// KindOf classifies any error; unknown errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// StatusCode maps an error to its HTTP status. Missing entities are treated
// as client errors rather than 404s, matching the API's established contract.
func StatusCode(err error) int {
	switch KindOf(err) {
	case Invalid, NotFound, Precondition:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message. Internal errors are masked.
func Message(err error) string {
	if KindOf(err) == Internal {
		return "unexpected error"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
