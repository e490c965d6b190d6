package organ

import (
	"errors"
	"fmt"
)

// Tolerance is the numerical slack applied to every conservation and
// capacity check.
const Tolerance = 1e-10

// ErrConservation and ErrCapacity classify timestep failures. Both abandon
// the current timestep's computation; neither is retried. Pool mutations
// made earlier in the same handler stand.
var (
	ErrConservation = errors.New("conservation violation")
	ErrCapacity     = errors.New("capacity violation")
)

// ConservationError reports a computed supply, retranslocation, or
// reallocation value that is negative or exceeds its bound beyond Tolerance.
type ConservationError struct {
	Organ    string
	Quantity string
	Value    float64
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("%s: %s conservation violated (value %g)", e.Organ, e.Quantity, e.Value)
}

func (e *ConservationError) Unwrap() error { return ErrConservation }

// CapacityError reports a requested allocation exceeding demand or capacity
// beyond Tolerance.
type CapacityError struct {
	Organ    string
	Quantity string
	Excess   float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s allocation exceeds capacity by %g", e.Organ, e.Quantity, e.Excess)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }
