package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means no API key was supplied. Checked before
	// any remote call is attempted, never retried.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrRemoteTimeout means the remote call exceeded its deadline.
	ErrRemoteTimeout = errors.New("remote completion timed out")

	// ErrNoSession means a mutating operation referenced a session key
	// that was never resolved.
	ErrNoSession = errors.New("no active session")
)

// RemoteError is a failed remote completion call. The upstream status and
// body are surfaced verbatim to the caller; no retry, no rollback of the
// already-appended user message.
type RemoteError struct {
	Status int
	Body   string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote completion failed: %v", e.Err)
	}
	return fmt.Sprintf("remote completion failed: http %d: %s", e.Status, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
