package tendency

import (
	"fmt"
	"sort"
)

// PiecewiseTendency interpolates linearly between explicit points. Its time
// interval is the span of the points; it takes no timing fields and never
// consults its neighbours.
type PiecewiseTendency struct {
	Base
	times, values []float64
}

// NewPiecewise validates the point arrays and builds the tendency. Any shape
// problem is returned as an error; there is no defaulted recovery.
func NewPiecewise(spec Spec, env Env) (*PiecewiseTendency, error) {
	r := newFieldReader(spec)
	times := r.floats("time")
	values := r.floats("value")
	if r.err != nil {
		return nil, r.err
	}
	if err := validatePoints(times, values); err != nil {
		return nil, specErrorf(spec, err, "time %v, value %v", times, values)
	}

	n := len(times)
	t := &PiecewiseTendency{
		Base: Base{
			kind:       KindPiecewise,
			line:       spec.Line,
			env:        env.normalized(),
			fixedTimes: true,
			start:      times[0],
			end:        times[n-1],
			duration:   times[n-1] - times[0],
		},
		times:  times,
		values: values,
	}
	t.init(t, r)

	return t, nil
}

func validatePoints(times, values []float64) error {
	if times == nil || values == nil {
		return ErrMissingPoints
	}
	if len(times) != len(values) {
		return ErrLengthMismatch
	}
	if len(times) < 2 {
		return ErrTooFewPoints
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return fmt.Errorf("%w at index %d", ErrNotIncreasing, i)
		}
	}

	return nil
}

// Points returns copies of the time and value arrays.
func (t *PiecewiseTendency) Points() ([]float64, []float64) {
	return append([]float64(nil), t.times...), append([]float64(nil), t.values...)
}

func (t *PiecewiseTendency) resolveValues() error { return nil }

func (t *PiecewiseTendency) boundary() boundary {
	n := len(t.times)
	return boundary{
		startValue: t.values[0],
		endValue:   t.values[n-1],
		startDeriv: t.slope(0),
		endDeriv:   t.slope(n - 2),
	}
}

func (t *PiecewiseTendency) startLinks() (bool, bool) { return false, false }

// Generate returns the points themselves.
func (t *PiecewiseTendency) Generate() ([]float64, []float64) {
	return t.Points()
}

// Values interpolates, clamping outside the point span.
func (t *PiecewiseTendency) Values(times []float64) []float64 {
	out := make([]float64, len(times))
	n := len(t.times)
	for i, tt := range times {
		switch {
		case tt <= t.times[0]:
			out[i] = t.values[0]
		case tt >= t.times[n-1]:
			out[i] = t.values[n-1]
		default:
			k := t.segment(tt)
			out[i] = t.values[k] + t.slope(k)*(tt-t.times[k])
		}
	}

	return out
}

// Derivatives returns the slope of the segment holding each time; the last
// point belongs to the last segment and times outside the span get 0.
func (t *PiecewiseTendency) Derivatives(times []float64) []float64 {
	out := make([]float64, len(times))
	n := len(t.times)
	for i, tt := range times {
		if tt < t.times[0] || tt > t.times[n-1] {
			continue
		}
		out[i] = t.slope(t.segment(tt))
	}

	return out
}

// segment returns k with times[k] <= tt < times[k+1], capped at n-2.
func (t *PiecewiseTendency) segment(tt float64) int {
	k := sort.SearchFloat64s(t.times, tt)
	if k < len(t.times) && t.times[k] == tt {
		k++
	}
	k--
	if k < 0 {
		k = 0
	}
	if k > len(t.times)-2 {
		k = len(t.times) - 2
	}

	return k
}

func (t *PiecewiseTendency) slope(k int) float64 {
	return (t.values[k+1] - t.values[k]) / (t.times[k+1] - t.times[k])
}
