package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found upstream.
	ErrNotFound = errors.New("not found")
	// ErrQuantityBelowMinimum indicates a quantity change would drop a line
	// below one. It is caught before dispatch, never sent to the server.
	ErrQuantityBelowMinimum = errors.New("quantity below minimum")
)

// NetworkError wraps a failed request against the upstream cart API: either
// the transport failed or the server answered with a non-2xx status.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
