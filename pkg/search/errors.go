package search

import (
	"errors"
	"fmt"
	"time"
)

// ErrBrowserUnavailable indicates no usable browser executable was found.
// The call fails without retry.
var ErrBrowserUnavailable = errors.New("no usable browser found (Chrome or Edge)")

// NavigationError wraps a navigation timeout or network failure. It is
// routed to the human-intervention handler rather than surfaced directly.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// VerificationTimeoutError indicates the intervention handler exhausted
// its wait without the user resolving the challenge. Callers should apply
// a cooldown before retrying.
type VerificationTimeoutError struct {
	Waited time.Duration
}

func (e *VerificationTimeoutError) Error() string {
	return fmt.Sprintf("manual verification timed out after %d minutes; retry later", int(e.Waited.Minutes()))
}

// SessionError indicates browser resource allocation or teardown failed.
// The session is force-closed and the call fails.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s failed: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
