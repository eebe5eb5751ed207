package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the submission server could not be reached.
	ErrUnavailable = errors.New("submission server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("submission request timed out")

	// ErrRejected indicates the server answered with a non-2xx status.
	ErrRejected = errors.New("submission rejected by server")
)

// StatusError carries the status and a body excerpt of a rejected request.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("submission rejected by server: status %d", e.StatusCode)
	}
	return fmt.Sprintf("submission rejected by server: status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRejected }
