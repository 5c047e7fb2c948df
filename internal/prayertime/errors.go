package prayertime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/prayer-engine/internal/method"
)

// Error kinds returned by the engine. Match them with errors.Is.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidTimeZone   = errors.New("invalid time zone offset")
	ErrInvalidMethod     = errors.New("invalid calculation method")
	ErrNoAngleSolution   = errors.New("no angle solution")
	// ErrInconsistentSchedule means the computed events were not strictly
	// increasing. It indicates a bug, not a user error.
	ErrInconsistentSchedule = errors.New("inconsistent schedule")

	ErrUnknownCalculationMethod = method.ErrUnknownCalculationMethod
)

// ValidationError describes a rejected input.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	kind   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

// NoSolutionError lists the events whose defining solar altitude is never
// reached on Date at Coordinate, and which the method's high latitude rule
// could not replace.
type NoSolutionError struct {
	Kinds      []Kind
	Date       Date
	Coordinate Coordinate
	Rule       method.HighLatitudeRule
}

func (e *NoSolutionError) Error() string {
	names := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		names[i] = k.String()
	}
	return fmt.Sprintf("no angle solution for %s on %s at %s (high latitude rule: %s)",
		strings.Join(names, ", "), e.Date, e.Coordinate, e.Rule)
}

func (e *NoSolutionError) Unwrap() error {
	return ErrNoAngleSolution
}
