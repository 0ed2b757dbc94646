package usecase

import (
	"errors"
	"net/http"
)

var (
	ErrBadInput              = errors.New("bad input")
	ErrNotAllowed            = errors.New("not allowed")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ApplicationError is an error whose message is safe to show to the caller.
type ApplicationError struct {
	Status  int
	Message string
	Fields  map[string]string
	kind    error
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func (e *ApplicationError) Unwrap() error {
	return e.kind
}

// BadInput reports a rejected request. fields maps request field names to messages.
func BadInput(msg string, fields map[string]string) error {
	return &ApplicationError{Status: http.StatusBadRequest, Message: msg, Fields: fields, kind: ErrBadInput}
}

func fieldError(field, msg string) error {
	return BadInput(msg, map[string]string{field: msg})
}

func NotAllowed(msg string) error {
	return &ApplicationError{Status: http.StatusForbidden, Message: msg, kind: ErrNotAllowed}
}

func NotFound(msg string) error {
	return &ApplicationError{Status: http.StatusNotFound, Message: msg, kind: ErrNotFound}
}

// AsApplicationError extracts the first ApplicationError in err's chain.
func AsApplicationError(err error) (*ApplicationError, bool) {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
