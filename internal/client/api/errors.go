package api

import (
	"errors"
	"net/http"
)

// Sentinel errors for the two failure classes callers branch on.
// Match with errors.Is; the concrete *Error carries status and message.
var (
	ErrUnavailable  = errors.New("cannot reach server")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is the normalized error every pipeline call fails with, regardless
// of the underlying cause. Status is 0 when no response was received.
type Error struct {
	Status  int
	Message string

	// sentinel distinguishes transport failures from request construction
	// failures, which both carry Status 0.
	sentinel error
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthorized) and errors.Is(err, ErrUnavailable)
// work on normalized errors.
func (e *Error) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Status == http.StatusUnauthorized
	}
	return target != nil && target == e.sentinel
}

// unavailable builds the fixed connectivity-failure error.
func unavailable() *Error {
	return &Error{Message: ErrUnavailable.Error(), sentinel: ErrUnavailable}
}
