package api

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the target todo no longer exists server-side.
var ErrNotFound = errors.New("todo not found")

// RequestError wraps a transport failure: the request never produced an
// HTTP response (connection refused, timeout, DNS failure).
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-2xx HTTP response. A 404 unwraps to
// ErrNotFound so callers can test with errors.Is.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("%s: server returned %d", e.Op, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrNotFound
	}

	return nil
}
