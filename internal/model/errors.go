package model

import "fmt"

// InsufficientDataError signals that a forecast payload was too sparse to
// normalize: fewer than 2 valid samples remained.
type InsufficientDataError struct {
	Samples int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient forecast data: %d valid samples, need at least 2", e.Samples)
}

// DivergenceError signals that a simulation required humidity clamping on
// more than a quarter of its steps, indicating a scenario/forecast
// mismatch rather than a recoverable numerical issue.
type DivergenceError struct {
	Clamped int
	Steps   int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("simulation diverged: humidity clamped on %d of %d steps", e.Clamped, e.Steps)
}

// InvalidScenarioError signals an out-of-range housing coefficient.
type InvalidScenarioError struct {
	Field  string
	Reason string
}

func (e *InvalidScenarioError) Error() string {
	return fmt.Sprintf("invalid housing scenario: %s %s", e.Field, e.Reason)
}

// ContractViolationError signals an internal invariant failure. It
// indicates a bug in the pipeline, not bad user input.
type ContractViolationError struct {
	Invariant string
}

func (e *ContractViolationError) Error() string {
	return "contract violation: " + e.Invariant
}
