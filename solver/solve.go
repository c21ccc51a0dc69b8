// SPDX-License-Identifier: MIT
// Package: wavechain/solver
//
// solve.go - Gauss-Jordan elimination over the unknown columns of A·x = b.
//
// Contract:
//   - inputs[i] == nil marks variable i as unknown; non-nil values are kept verbatim.
//   - Every row of A is verified after solving; a violated row is ErrInconsistent.
//   - No panics on user input; shape problems surface as ErrBadInput.

package solver

import (
	"math"
)

// System is a set of linear rows A·x = b. Every row of A must have the same
// length as the inputs slice passed to Solve.
type System struct {
	A [][]float64
	B []float64
}

// Sum3 returns the single-row system c0·x0 + c1·x1 + c2·x2 = 0.
func Sum3(c0, c1, c2 float64) System {
	return System{
		A: [][]float64{{c0, c1, c2}},
		B: []float64{0},
	}
}

// Solve resolves the unknown entries of inputs so that sys holds, and returns
// the full vector (known values unchanged).
//
// Implementation:
//   - Stage 1: validate shapes and finiteness.
//   - Stage 2: move known columns to the right-hand side, building an m×(k+1)
//     augmented matrix over the k unknowns.
//   - Stage 3: Gauss-Jordan with partial pivoting; a column with no usable
//     pivot is ErrIndeterminate.
//   - Stage 4: verify every original row within a tolerance relative to the
//     magnitude of its terms.
//
// Errors: ErrBadInput, ErrUnderdetermined, ErrIndeterminate, ErrInconsistent.
func Solve(inputs []*float64, sys System, opts ...Option) ([]float64, error) {
	cfg := newSolveConfig(opts...)
	if err := validateSystem(inputs, sys); err != nil {
		return nil, err
	}

	n, m := len(inputs), len(sys.A)
	out := make([]float64, n)
	unknown := make([]int, 0, n)
	for i, v := range inputs {
		if v == nil {
			unknown = append(unknown, i)
			continue
		}
		out[i] = *v
	}

	if k := len(unknown); k > 0 {
		if k > m {
			return nil, solverErrorf(ErrUnderdetermined, "%d unknowns, %d rows", k, m)
		}
		if err := eliminate(out, inputs, unknown, sys); err != nil {
			return nil, err
		}
	}

	if err := verify(out, sys, cfg.tol); err != nil {
		return nil, err
	}

	return out, nil
}

// eliminate writes the solved unknowns into out.
func eliminate(out []float64, inputs []*float64, unknown []int, sys System) error {
	m, k := len(sys.A), len(unknown)

	rows := make([][]float64, m)
	for r, coeffs := range sys.A {
		row := make([]float64, k+1)
		rhs := sys.B[r]
		for j, a := range coeffs {
			if inputs[j] != nil {
				rhs -= a * out[j]
			}
		}
		for c, j := range unknown {
			row[c] = coeffs[j]
		}
		row[k] = rhs
		rows[r] = row
	}

	pivots := make([]int, k)
	next := 0
	for c := 0; c < k; c++ {
		best, bestAbs := -1, pivotEpsilon
		for r := next; r < m; r++ {
			if a := math.Abs(rows[r][c]); a > bestAbs {
				best, bestAbs = r, a
			}
		}
		if best < 0 {
			return solverErrorf(ErrIndeterminate, "variable %d", unknown[c])
		}
		rows[next], rows[best] = rows[best], rows[next]

		p := rows[next][c]
		for r := 0; r < m; r++ {
			if r == next {
				continue
			}
			f := rows[r][c] / p
			if f == 0 {
				continue
			}
			for cc := c; cc <= k; cc++ {
				rows[r][cc] -= f * rows[next][cc]
			}
		}
		pivots[c] = next
		next++
	}

	for c, j := range unknown {
		row := rows[pivots[c]]
		out[j] = row[k] / row[c]
		if out[j] == 0 {
			out[j] = 0 // no negative zero
		}
	}

	return nil
}

// verify checks |A_r·x − b_r| ≤ tol·max(1, Σ|A_rj·x_j| + |b_r|) for every row.
func verify(x []float64, sys System, tol float64) error {
	for r, coeffs := range sys.A {
		residual := -sys.B[r]
		scale := math.Abs(sys.B[r])
		for j, a := range coeffs {
			term := a * x[j]
			residual += term
			scale += math.Abs(term)
		}
		if math.Abs(residual) > tol*math.Max(1, scale) {
			return solverErrorf(ErrInconsistent, "row %d residual %g", r, residual)
		}
	}

	return nil
}

func validateSystem(inputs []*float64, sys System) error {
	if len(inputs) == 0 || len(sys.A) == 0 || len(sys.A) != len(sys.B) {
		return solverErrorf(ErrBadInput, "shape %d vars, %d rows, %d rhs", len(inputs), len(sys.A), len(sys.B))
	}
	for r, coeffs := range sys.A {
		if len(coeffs) != len(inputs) {
			return solverErrorf(ErrBadInput, "row %d has %d coefficients, want %d", r, len(coeffs), len(inputs))
		}
		for _, a := range coeffs {
			if !finite(a) {
				return solverErrorf(ErrBadInput, "row %d coefficient %v", r, a)
			}
		}
		if !finite(sys.B[r]) {
			return solverErrorf(ErrBadInput, "rhs %d is %v", r, sys.B[r])
		}
	}
	for i, v := range inputs {
		if v != nil && !finite(*v) {
			return solverErrorf(ErrBadInput, "input %d is %v", i, *v)
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Float returns a pointer to v; a convenience for building inputs.
func Float(v float64) *float64 {
	return &v
}
