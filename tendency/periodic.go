// SPDX-License-Identifier: MIT
// Package: wavechain/tendency
//
// periodic.go - sine, sawtooth, square and triangle waves.
//
// Conventions (x counts cycles from the tendency start):
//
//	x(t)     = frequency·(t − start) + phase/2π
//	sine     = base + A·sin(2πx)
//	square   = base + A   when frac(x) < ½, else base − A
//	sawtooth = base + A·(2·frac(x + ½) − 1)
//	triangle = base + A·(1 − 4·|frac(x + ¼) − ½|)
//
// All four start at base (square at base + A) for phase 0 and rise first,
// so phase shifts them identically. Discontinuities are right-continuous.
//
// Minimal-point generation (square, sawtooth, triangle):
//   • Breakpoints sit at x = k/2 (square), k + ½ (sawtooth), k/2 + ¼ (triangle).
//   • The first breakpoint strictly after the wrapped phase is found in closed
//     form, then advanced by the breakpoint spacing until it reaches end.
//   • A vertical edge emits (tb − ε, level before) and (tb, level after).

package tendency

import (
	"errors"
	"math"

	"github.com/katalvlaran/wavechain/solver"
)

// Shape selects the periodic waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSawtooth
	ShapeSquare
	ShapeTriangle
)

// Periodic defaults.
const (
	defaultAmplitude = 1.0
	defaultFrequency = 1.0
	defaultPhase     = 0.0
)

// levelSystem ties base/amplitude/min/max: base − A = min, base + A = max.
var levelSystem = solver.System{
	A: [][]float64{
		{1, -1, -1, 0},
		{1, 1, 0, -1},
	},
	B: []float64{0, 0},
}

// PeriodicTendency is the shared implementation of the four periodic waves.
type PeriodicTendency struct {
	Base
	shape Shape

	userBase, userAmplitude, userMin, userMax *float64
	userFrequency, userPeriod, userPhase      *float64

	baseDefaulted                     bool
	base, amplitude, frequency, phase float64
}

// NewPeriodic builds a periodic tendency of the given shape from spec.
func NewPeriodic(shape Shape, spec Spec, env Env) (*PeriodicTendency, error) {
	r := newFieldReader(spec)
	t := &PeriodicTendency{Base: newBase(shape.kind(), r, env), shape: shape}
	t.userBase = r.float("base")
	t.userAmplitude = r.float("amplitude")
	t.userMin = r.float("min")
	t.userMax = r.float("max")
	t.userFrequency = r.float("frequency")
	t.userPeriod = r.float("period")
	t.userPhase = r.float("phase")
	if r.err != nil {
		return nil, r.err
	}
	t.init(t, r)

	return t, nil
}

func (s Shape) kind() Kind {
	switch s {
	case ShapeSawtooth:
		return KindSawtooth
	case ShapeSquare:
		return KindSquare
	case ShapeTriangle:
		return KindTriangle
	default:
		return KindSine
	}
}

// Shape returns the waveform shape.
func (t *PeriodicTendency) Shape() Shape { return t.shape }

// BaseLevel returns the resolved offset.
func (t *PeriodicTendency) BaseLevel() float64 { return t.base }

// Amplitude returns the resolved amplitude.
func (t *PeriodicTendency) Amplitude() float64 { return t.amplitude }

// Frequency returns the resolved frequency.
func (t *PeriodicTendency) Frequency() float64 { return t.frequency }

// Period returns 1/frequency.
func (t *PeriodicTendency) Period() float64 { return 1 / t.frequency }

// Phase returns the phase in radians, as given.
func (t *PeriodicTendency) Phase() float64 { return t.phase }

// Rate returns the magnitude of the linear slope for sawtooth (2·f·A) and
// triangle (4·f·A) waves; sine and square have none.
func (t *PeriodicTendency) Rate() (float64, bool) {
	switch t.shape {
	case ShapeSawtooth:
		return 2 * t.frequency * t.amplitude, true
	case ShapeTriangle:
		return 4 * t.frequency * t.amplitude, true
	}

	return 0, false
}

func (t *PeriodicTendency) resolveValues() error {
	var errs []error

	inputs := []*float64{t.userBase, t.userAmplitude, t.userMin, t.userMax}
	known := countKnown(inputs)
	t.baseDefaulted = false
	if known < 2 && inputs[1] == nil {
		inputs[1] = solver.Float(defaultAmplitude)
		known++
	}
	if known < 2 && inputs[0] == nil {
		inputs[0] = solver.Float(t.inheritedLevel())
		t.baseDefaulted = true
	}
	x, err := solver.Solve(inputs, levelSystem, solver.WithTolerance(t.env.Tolerance))
	if err != nil {
		t.base, t.amplitude = 0, 0
		errs = append(errs, valueErrorf("base, amplitude, min and max: %v", err))
	} else {
		t.base, t.amplitude = x[0], x[1]
	}

	freq, err := t.resolveFrequency()
	if err != nil {
		errs = append(errs, err)
	}
	t.frequency = freq

	t.phase = defaultPhase
	if t.userPhase != nil {
		t.phase = *t.userPhase
	}

	return errors.Join(errs...)
}

func (t *PeriodicTendency) resolveFrequency() (float64, error) {
	f, p := t.userFrequency, t.userPeriod
	switch {
	case f != nil && p != nil:
		if math.Abs(*f**p-1) > t.env.Tolerance*math.Max(1, math.Abs(*f**p)) {
			return defaultFrequency, valueErrorf("frequency %g and period %g disagree", *f, *p)
		}
		if *f <= 0 {
			return defaultFrequency, valueErrorf("frequency %g must be positive", *f)
		}
		return *f, nil
	case f != nil:
		if *f <= 0 {
			return defaultFrequency, valueErrorf("frequency %g must be positive", *f)
		}
		return *f, nil
	case p != nil:
		if *p <= 0 {
			return defaultFrequency, valueErrorf("period %g must be positive", *p)
		}
		return 1 / *p, nil
	}

	return defaultFrequency, nil
}

func (t *PeriodicTendency) boundary() boundary {
	return boundary{
		startValue: t.valueAt(t.start),
		endValue:   t.valueAt(t.end),
		startDeriv: t.derivativeAt(t.start),
		endDeriv:   t.derivativeAt(t.end),
	}
}

func (t *PeriodicTendency) startLinks() (bool, bool) {
	return t.baseDefaulted && t.prev != nil, false
}

// cycles maps a time to x, the number of cycles since start plus the phase.
func (t *PeriodicTendency) cycles(tt float64) float64 {
	return t.frequency*(tt-t.start) + t.phase/twoPi
}

func (t *PeriodicTendency) valueAt(tt float64) float64 {
	return t.base + t.amplitude*t.shape.level(t.cycles(tt))
}

func (t *PeriodicTendency) derivativeAt(tt float64) float64 {
	return t.amplitude * t.frequency * t.shape.slope(t.cycles(tt))
}

// level is the unit waveform in [-1, 1].
func (s Shape) level(x float64) float64 {
	switch s {
	case ShapeSawtooth:
		return 2*frac(x+0.5) - 1
	case ShapeSquare:
		if frac(x) < 0.5 {
			return 1
		}
		return -1
	case ShapeTriangle:
		return 1 - 4*math.Abs(frac(x+0.25)-0.5)
	default:
		return math.Sin(twoPi * x)
	}
}

// slope is d(level)/dx.
func (s Shape) slope(x float64) float64 {
	switch s {
	case ShapeSawtooth:
		return 2
	case ShapeSquare:
		return 0
	case ShapeTriangle:
		if frac(x+0.25) < 0.5 {
			return 4
		}
		return -4
	default:
		return twoPi * math.Cos(twoPi*x)
	}
}

// Values evaluates the wave at arbitrary times.
func (t *PeriodicTendency) Values(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, tt := range times {
		out[i] = t.valueAt(tt)
	}

	return out
}

// Derivatives evaluates the analytic derivative; 0 for square waves.
func (t *PeriodicTendency) Derivatives(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, tt := range times {
		out[i] = t.derivativeAt(tt)
	}

	return out
}

// Generate samples sine waves evenly and emits only start, end and the
// breakpoints for the piecewise-linear shapes.
func (t *PeriodicTendency) Generate() ([]float64, []float64) {
	if t.shape == ShapeSine {
		n := int(math.Ceil(t.duration*t.frequency*float64(t.env.Sampling.SinePointsPerPeriod))) + 1
		times := linspace(t.start, t.end, clampPoints(n, t.env.Sampling.MaxPoints))
		return times, t.Values(times)
	}

	return t.breakpoints()
}

func (t *PeriodicTendency) breakpoints() ([]float64, []float64) {
	times := []float64{t.start}
	values := []float64{t.valueAt(t.start)}
	if t.duration <= 0 || t.frequency <= 0 {
		return append(times, t.end), append(values, t.valueAt(t.end))
	}

	var first, step float64
	switch t.shape {
	case ShapeSquare:
		first, step = 0.5, 0.5
	case ShapeSawtooth:
		first, step = 0.5, 1
	default:
		first, step = 0.25, 0.5
	}

	u := wrapPhase(t.phase) / twoPi
	xb := first + (math.Floor((u-first)/step)+1)*step
	eps := t.env.Sampling.EdgeEpsilon
	for len(times) < t.env.Sampling.MaxPoints {
		tb := t.start + (xb-u)/t.frequency
		if tb >= t.end-eps {
			break
		}
		if tb <= times[0]+eps {
			// Breakpoint on the start sample.
			xb += step
			continue
		}
		if t.shape == ShapeTriangle {
			times = append(times, tb)
			values = append(values, t.base+t.amplitude*triangleExtremum(xb))
		} else {
			before, after := t.shape.edge(xb)
			if tb-eps > times[len(times)-1] {
				times = append(times, tb-eps)
				values = append(values, t.base+t.amplitude*before)
			}
			times = append(times, tb)
			values = append(values, t.base+t.amplitude*after)
		}
		xb += step
	}

	return append(times, t.end), append(values, t.valueAt(t.end))
}

// edge returns the unit levels either side of a discontinuity at x.
func (s Shape) edge(x float64) (before, after float64) {
	if s == ShapeSawtooth {
		return 1, -1
	}
	if int(math.Round(2*x))%2 == 1 {
		return 1, -1
	}

	return -1, 1
}

// triangleExtremum is +1 at x ≡ ¼ and −1 at x ≡ ¾ (mod 1).
func triangleExtremum(x float64) float64 {
	if int(math.Round(4*x))%4 == 1 {
		return 1
	}

	return -1
}

func wrapPhase(phase float64) float64 {
	w := math.Mod(phase, twoPi)
	if w < 0 {
		w += twoPi
	}

	return w
}
