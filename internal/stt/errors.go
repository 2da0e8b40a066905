package stt

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a status-coded transcription failure. Backends return tagged
// errors instead of raising; only the HTTP boundary maps them to responses.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a status-coded error.
func NewError(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BadRequest tags a caller input error (missing file, bad extension,
// missing credential).
func BadRequest(format string, args ...any) *Error {
	return NewError(http.StatusBadRequest, format, args...)
}

// Internal tags a backend or infrastructure failure.
func Internal(format string, args ...any) *Error {
	return NewError(http.StatusInternalServerError, format, args...)
}

// StatusOf returns the HTTP status for err. Errors that carry no status
// are treated as internal failures.
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}
