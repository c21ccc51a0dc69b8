// Package solver resolves the small linear systems that describe a tendency's
// boundary conditions.
//
// A system is a set of rows A·x = b over a short vector of variables, some of
// which the user supplied and some of which are missing. Solve substitutes the
// known values, eliminates the unknown columns with partial pivoting and then
// checks every row against a relative tolerance, so that over-determined input
// is verified rather than silently overwritten.
//
// Typical systems are a single row:
//
//	start + duration - end = 0        Sum3(1, 1, -1)
//	from + duration·rate - to = 0     Sum3(1, duration, -1)
//
// Errors:
//
//	ErrInconsistent    - the known values violate a row beyond tolerance.
//	ErrIndeterminate   - an unknown cannot be isolated (singular column).
//	ErrUnderdetermined - more unknowns than rows; callers must default first.
//	ErrBadInput        - shape mismatch or non-finite input.
//
// Complexity: O(m·k²) for m rows and k unknowns; in practice m ≤ 2 and k ≤ 2.
package solver
