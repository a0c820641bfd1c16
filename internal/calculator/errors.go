package calculator

import "errors"

var (
	// ErrInvalidTileSpec is returned when a tile spec cannot be resolved to
	// a positive coverage-per-box.
	ErrInvalidTileSpec = errors.New("invalid tile spec")

	// ErrInvalidGeometry is returned when the requested area or perimeter
	// is not positive after any required deductions.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDivisionByZero is the backstop for a zero coverage divisor at the
	// box-count step. Resolution should reject it first; the box math must
	// never emit Inf or NaN regardless.
	ErrDivisionByZero = errors.New("coverage per box is zero")
)
