package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientResources is the sentinel every *ResourceError unwraps to.
	ErrInsufficientResources = errors.New("insufficient barrier budget")
	ErrSessionOver           = errors.New("session is over")
	ErrOffGrid               = errors.New("barrier endpoint is off the grid")
	ErrDegenerateBarrier     = errors.New("barrier endpoints coincide")
)

// ResourceError rejects a placement whose length exceeds what the budget
// allows. Nothing is mutated when it is returned.
type ResourceError struct {
	Length float64 // requested length in grid units
	Limit  int64   // budget plus allowance at the time of the request
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("barrier length %.2f exceeds limit %d", e.Length, e.Limit)
}

func (e *ResourceError) Unwrap() error { return ErrInsufficientResources }

// CorruptionError reports a target health outside the sane range. It ends
// the session as Lost.
type CorruptionError struct {
	Health int64
	Limit  int64
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("target health %d above corruption limit %d", e.Health, e.Limit)
}
