// SPDX-License-Identifier: MIT
// Package: wavechain/derived
//
// errors.go - sentinel errors for expression compilation and evaluation.

package derived

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyExpression indicates an expression with no content.
	ErrEmptyExpression = errors.New("derived: empty expression")

	// ErrSelfReference indicates an expression that references its own waveform.
	ErrSelfReference = errors.New("derived: expression references itself")

	// ErrMissingReference indicates a reference to a waveform that does not exist.
	ErrMissingReference = errors.New("derived: reference to unknown waveform")

	// ErrUnsupportedSyntax indicates syntax outside the arithmetic grammar.
	ErrUnsupportedSyntax = errors.New("derived: unsupported expression syntax")

	// ErrLengthMismatch indicates a lookup that returned the wrong number of samples.
	ErrLengthMismatch = errors.New("derived: sample count mismatch")
)

// derivedErrorf prefixes err with the derived waveform name.
func derivedErrorf(name string, err error, format string, args ...interface{}) error {
	return fmt.Errorf("derived %q: %s: %w", name, fmt.Sprintf(format, args...), err)
}
