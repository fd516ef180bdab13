package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrGameNotFound indicates the requested game is not in the catalog
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidGame indicates a game submission failed validation
	ErrInvalidGame = errors.New("invalid game")

	// ErrNotImplemented indicates an operation has no backing implementation yet
	ErrNotImplemented = errors.New("not implemented")
)

// APIError is a transport-level failure: a non-2xx status or a network fault.
// Status is 0 when no response was received.
type APIError struct {
	Status   int
	Method   string
	Endpoint string
	Err      error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return "request failed"
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.Err }

// RejectedError is an application-level failure: the backend answered but
// reported success=false.
type RejectedError struct {
	Endpoint string
	Message  string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return e.Message
}

// IsTransport reports whether err is a transport-level failure
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsRejected reports whether err is an application-level rejection
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}
