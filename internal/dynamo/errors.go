package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive substep underflowed.
	ErrStepTooSmall = errors.New("dynamo: adaptive substep below minimum")

	// ErrStepBudget indicates the substep budget for one output interval
	// was exhausted without reaching the target time.
	ErrStepBudget = errors.New("dynamo: substep budget exhausted")
)

// StepError wraps a stepping failure with the time it occurred at.
type StepError struct {
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("t=%.6g: %v", e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
