package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps transport-level failures (connection refused,
	// timeouts). The server never answered.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the backend rejected the bearer token. The
	// session is cleared before this is returned.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the requested car or resource does not
	// exist. Callers render it as an explicit not-found state.
	ErrNotFound = errors.New("not found")
)

// Error carries a non-2xx response whose body provided a message. The message
// is the server's own wording and is shown to the user verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}
