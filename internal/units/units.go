// Package units normalizes linear measurements to feet before any area math.
// Room and tile dimensions arrive in either feet or inches; everything
// downstream works in square feet.
package units

import (
	"errors"
	"fmt"
)

// ErrInvalidUnit is returned when a unit outside {feet, inch} is supplied.
var ErrInvalidUnit = errors.New("invalid unit")

// Unit is a linear measurement unit.
type Unit string

const (
	Feet Unit = "feet"
	Inch Unit = "inch"
)

const inchesPerFoot = 12.0

// Parse converts a raw string into a Unit.
// Returns ErrInvalidUnit for anything outside the supported set.
func Parse(s string) (Unit, error) {
	switch Unit(s) {
	case Feet, Inch:
		return Unit(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

// ToFeet converts a magnitude in the given unit to feet.
// Feet is the identity; inches divide by 12.
func ToFeet(value float64, unit Unit) (float64, error) {
	switch unit {
	case Feet:
		return value, nil
	case Inch:
		return value / inchesPerFoot, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
}

// Measurement is a non-negative magnitude paired with its unit.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Feet returns the measurement normalized to feet.
func (m Measurement) Feet() (float64, error) {
	return ToFeet(m.Value, m.Unit)
}
