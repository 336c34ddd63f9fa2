// Package apperrors defines the error taxonomy shared by the service and
// HTTP layers. Errors carry a kind (for errors.Is checks) and a message
// that names the field or entity that failed.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrInvalidFormat = errors.New("invalid format")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal failure")
)

// Error is a domain error with a kind and a human-readable message.
type Error struct {
	Kind    error
	Message string
	Err     error // underlying cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func (e *Error) Is(target error) bool {
	if errors.Is(e.Kind, target) {
		return true
	}
	return e.Err != nil && errors.Is(e.Err, target)
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func DuplicateKey(format string, args ...any) *Error {
	return &Error{Kind: ErrDuplicateKey, Message: fmt.Sprintf(format, args...)}
}

func InvalidFormat(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidFormat, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// Internal wraps an unexpected infrastructure error. The cause is kept for
// logging but Message is all a client may see.
func Internal(err error, message string) *Error {
	return &Error{Kind: ErrInternal, Message: message, Err: err}
}
