// SPDX-License-Identifier: MIT
// Package: wavechain/solver
//
// errors.go - sentinel errors for the solver package.
//
// Callers branch with errors.Is; the solver wraps sentinels with the failing
// row or column through solverErrorf so messages stay greppable.

package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistent indicates that the known inputs violate a constraint row.
	ErrInconsistent = errors.New("solver: inconsistent inputs")

	// ErrIndeterminate indicates that an unknown has a zero (or vanishing)
	// coefficient in every remaining row, e.g. solving rate when duration == 0.
	ErrIndeterminate = errors.New("solver: indeterminate unknown")

	// ErrUnderdetermined indicates that fewer independent rows than unknowns
	// remain after substituting the known inputs.
	ErrUnderdetermined = errors.New("solver: underdetermined system")

	// ErrBadInput indicates a shape mismatch between inputs, A and b, or a
	// NaN/Inf entry.
	ErrBadInput = errors.New("solver: bad input")
)

// solverErrorf wraps err with a formatted context prefix, preserving errors.Is.
func solverErrorf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
