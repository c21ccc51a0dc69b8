package tendency

import (
	"github.com/katalvlaran/wavechain/solver"
)

// LinearTendency is a ramp constrained by from + duration·rate = to.
//
// When fewer than two of from/rate/to are given, from defaults to the previous
// end value (0 without one) and then to defaults to the next start value (from
// without one). An inconsistent system records a value error and falls back
// to a flat zero ramp.
type LinearTendency struct {
	Base
	userFrom, userRate, userTo *float64
	fromDefaulted              bool
	from, rate, to             float64
}

// NewLinear builds a linear tendency from spec.
func NewLinear(spec Spec, env Env) (*LinearTendency, error) {
	r := newFieldReader(spec)
	t := &LinearTendency{Base: newBase(KindLinear, r, env)}
	t.userFrom = r.float("from")
	t.userRate = r.float("rate")
	t.userTo = r.float("to")
	if r.err != nil {
		return nil, r.err
	}
	t.init(t, r)

	return t, nil
}

// From returns the resolved start value.
func (t *LinearTendency) From() float64 { return t.from }

// Rate returns the resolved slope.
func (t *LinearTendency) Rate() float64 { return t.rate }

// To returns the resolved end value.
func (t *LinearTendency) To() float64 { return t.to }

func (t *LinearTendency) resolveValues() error {
	inputs := []*float64{t.userFrom, t.userRate, t.userTo}
	known := countKnown(inputs)

	t.fromDefaulted = false
	if known < 2 && inputs[0] == nil {
		inputs[0] = solver.Float(t.prevEndValue(0))
		t.fromDefaulted = true
		known++
	}
	if known < 2 && inputs[2] == nil {
		inputs[2] = solver.Float(t.nextStartValue(*inputs[0]))
	}

	x, err := solver.Solve(inputs, solver.Sum3(1, t.duration, -1), solver.WithTolerance(t.env.Tolerance))
	if err != nil {
		t.from, t.rate, t.to = 0, 0, 0
		return valueErrorf("from, rate and to over duration %g: %v", t.duration, err)
	}
	t.from, t.rate, t.to = x[0], x[1], x[2]

	return nil
}

func (t *LinearTendency) boundary() boundary {
	return boundary{startValue: t.from, endValue: t.to, startDeriv: t.rate, endDeriv: t.rate}
}

func (t *LinearTendency) startLinks() (bool, bool) {
	fromPrev := t.fromDefaulted && t.prev != nil
	return fromPrev, fromPrev && t.userRate == nil
}

// Generate returns the two end points.
func (t *LinearTendency) Generate() ([]float64, []float64) {
	return []float64{t.start, t.end}, []float64{t.from, t.to}
}

// Values evaluates from + rate·(t − start).
func (t *LinearTendency) Values(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, tt := range times {
		out[i] = t.from + t.rate*(tt-t.start)
	}

	return out
}

// Derivatives returns the constant rate.
func (t *LinearTendency) Derivatives(times []float64) []float64 {
	return fill(len(times), t.rate)
}
