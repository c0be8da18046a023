package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable signals a transport-level failure: the server could not
	// be reached or did not answer.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized signals a 401 that could not be resolved by a token
	// refresh.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired is returned after a failed refresh: the session has
	// been cleared and the user must log in again. It matches ErrUnauthorized
	// under errors.Is, so generic 401 handling still applies.
	ErrSessionExpired = fmt.Errorf("session expired: %w", ErrUnauthorized)
)

// Error is a server-rejected request (4xx other than a refreshable 401, or
// any 5xx). Message is the server-supplied text when present, else a generic
// fallback suitable for showing to the user.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}
