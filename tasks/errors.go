package tasks

import "errors"

var (
	// ErrHTTPRequest wraps any failure building or executing an HTTP
	// request: a missing URL, a transport error, a body-marshal error.
	ErrHTTPRequest = errors.New("tasks: http request failed")

	// ErrMissingInput reports that a task's required Context key was
	// absent.
	ErrMissingInput = errors.New("tasks: required context key is absent")
)
