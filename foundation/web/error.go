package web

import "github.com/pkg/errors"

// Error is the trusted error type handlers and repositories return when a
// request failure should carry a specific HTTP status back to the client.
type Error struct {
	Err    error
	Status int
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// NewRequestError wraps a provided error with an HTTP status.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// GetError unwraps err down to a *web.Error, or returns nil when the error
// chain does not carry one.
func GetError(err error) *Error {
	var webErr *Error
	if errors.As(err, &webErr) {
		return webErr
	}
	return nil
}
