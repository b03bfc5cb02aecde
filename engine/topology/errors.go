package topology

import (
	"errors"
	"fmt"
)

// Sentinel errors for parameter validation and registry lookups.
var (
	ErrNotRegistered = errors.New("topology not registered")

	ErrNonPositiveVin     = errors.New("input voltage must be positive")
	ErrNonPositiveVout    = errors.New("output voltage must be positive")
	ErrNonPositivePower   = errors.New("power must be positive")
	ErrFrequencyRange     = errors.New("switching frequency out of range")
	ErrNonPositiveLlk     = errors.New("leakage inductance must be positive")
	ErrNonPositiveRatio   = errors.New("turns ratio must be positive")
	ErrPhaseShiftRange    = errors.New("phase shift must be 0-180 degrees")
	ErrModuleCount        = errors.New("need at least 4 modules per arm")
	ErrCellCount          = errors.New("need at least 3 H-bridge cells")
	ErrCellCountEven      = errors.New("odd number of cells required for symmetric waveforms")
	ErrVoltageClassTooLow = errors.New("input voltage below medium-voltage class")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%g)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value float64, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
