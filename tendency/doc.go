// Package tendency defines the segments a waveform is built from and the
// boundary-inference protocol that links them.
//
// A Tendency owns a time interval and a value law. Any of start, duration and
// end may be left unspecified; they are resolved with the solver package from
// the constraint start + duration = end, defaulting start to the end of the
// previous tendency and duration to 1. Value parameters are resolved the same
// way per variant (Linear: from + duration·rate = to; Periodic: base ± amplitude
// = max/min), defaulting missing boundary values from the neighbours.
//
// Neighbours are non-owning links set by the owning waveform. Changing a link
// re-resolves the tendency eagerly and, when its resolved timing or boundary
// values change, the immediate neighbours are re-resolved in turn. A tendency
// only reads the start boundary of its successor when that boundary was not
// itself derived from the predecessor, which keeps the read graph acyclic; a
// hop budget bounds every cascade regardless.
//
// Variants (type names):
//
//	constant                      ConstantTendency
//	linear                        LinearTendency
//	smooth                        SmoothTendency (clamped cubic Hermite)
//	sine, sine-wave               PeriodicTendency with ShapeSine
//	sawtooth, sawtooth-wave       PeriodicTendency with ShapeSawtooth
//	square, square-wave           PeriodicTendency with ShapeSquare
//	triangle, triangle-wave       PeriodicTendency with ShapeTriangle
//	piecewise                     PiecewiseTendency
//	repeat                        RepeatTendency (wraps a nested Sequence)
//
// Per-tendency numeric problems never abort construction: they are recorded
// as TimeError/ValueError and a documented fallback is used. Structural
// problems (unknown type, malformed piecewise arrays, empty repeat, wrong field
// types) are returned as errors from Build.
package tendency
