// SPDX-License-Identifier: MIT
// Package: wavechain/tendency
//
// errors.go - sentinel errors for the tendency package.
//
// Error policy:
//   • Structural errors (returned from Build/New*) abort construction.
//   • Time/value errors are recorded on the tendency (TimeError/ValueError)
//     and always wrap ErrTimeInconsistent, ErrNonPositiveDuration or
//     ErrValueInconsistent so callers can branch with errors.Is.

package tendency

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType indicates a spec whose type has no registered factory.
	ErrUnsupportedType = errors.New("tendency: unsupported tendency type")

	// ErrMissingType indicates a mapping spec without a type key.
	ErrMissingType = errors.New("tendency: missing tendency type")

	// ErrFieldType indicates a field of the wrong kind (e.g. a string where a
	// number is required).
	ErrFieldType = errors.New("tendency: invalid field type")

	// ErrMissingPoints indicates a piecewise tendency without time or value.
	ErrMissingPoints = errors.New("tendency: piecewise requires time and value")

	// ErrLengthMismatch indicates piecewise time and value of different lengths.
	ErrLengthMismatch = errors.New("tendency: piecewise time and value lengths differ")

	// ErrTooFewPoints indicates fewer than two piecewise points.
	ErrTooFewPoints = errors.New("tendency: piecewise requires at least two points")

	// ErrNotIncreasing indicates piecewise time that is not strictly increasing.
	ErrNotIncreasing = errors.New("tendency: piecewise time must be strictly increasing")

	// ErrEmptyRepeat indicates a repeat tendency without a nested waveform.
	ErrEmptyRepeat = errors.New("tendency: repeat requires a non-empty waveform")

	// ErrTimeInconsistent marks a recorded time error: start, duration and end
	// do not satisfy start + duration = end.
	ErrTimeInconsistent = errors.New("tendency: inconsistent start, duration and end")

	// ErrNonPositiveDuration marks a recorded time error: end is not after start.
	ErrNonPositiveDuration = errors.New("tendency: end must be greater than start")

	// ErrValueInconsistent marks a recorded value error.
	ErrValueInconsistent = errors.New("tendency: inconsistent values")
)

// specErrorf prefixes err with the spec type and line: "linear@12: ...".
func specErrorf(spec Spec, err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s@%d: %s: %w", spec.Type, spec.Line, fmt.Sprintf(format, args...), err)
}

// valueErrorf records a value error that wraps ErrValueInconsistent.
func valueErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValueInconsistent, fmt.Sprintf(format, args...))
}
