package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Invalid-argument errors
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidTail         = fmt.Errorf("%w: tail must be 1 or 2", ErrInvalidArgument)
	ErrUnknownVarianceType = fmt.Errorf("%w: unrecognized variance type", ErrInvalidArgument)
	ErrMissingSigma        = fmt.Errorf("%w: sigma required for continuous variance", ErrInvalidArgument)

	// Division-by-zero errors
	ErrDivisionByZero    = errors.New("division by zero")
	ErrZeroExpectedCount = fmt.Errorf("%w: expected category count is zero", ErrDivisionByZero)

	// Data errors
	ErrEmptyOutcomeSequence = errors.New("empty outcome sequence")
	ErrNonBinaryOutcome     = fmt.Errorf("%w: outcome values must be 0 or 1", ErrInvalidArgument)
)

// Error constructors with context
func NewInvalidArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, field, reason)
}

func NewZeroExpectedCountError(category int) error {
	return fmt.Errorf("%w (category %d)", ErrZeroExpectedCount, category)
}

// Error checking helpers
func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsDivisionByZeroError(err error) bool {
	return errors.Is(err, ErrDivisionByZero)
}
