package tendency

import (
	"math"
)

// RepeatTendency plays a nested waveform over and over. Its period is the
// nested waveform's total length; a query time t maps to
// (t − start) mod period + nested start.
type RepeatTendency struct {
	Base
	inner  Sequence
	period float64
}

// NewRepeat builds the nested waveform through env.Nest and wraps it.
func NewRepeat(spec Spec, env Env) (*RepeatTendency, error) {
	r := newFieldReader(spec)
	t := &RepeatTendency{Base: newBase(KindRepeat, r, env)}
	specs := r.specs("waveform")
	if r.err != nil {
		return nil, r.err
	}
	if len(specs) == 0 {
		return nil, specErrorf(spec, ErrEmptyRepeat, "waveform")
	}
	if env.Nest == nil {
		return nil, specErrorf(spec, ErrUnsupportedType, "nested waveforms are not available")
	}
	inner, err := env.Nest(specs)
	if err != nil {
		return nil, specErrorf(spec, err, "waveform")
	}
	t.inner = inner
	t.init(t, r)

	return t, nil
}

// Period returns the length of one repetition.
func (t *RepeatTendency) Period() float64 { return t.period }

// Inner returns the nested waveform.
func (t *RepeatTendency) Inner() Sequence { return t.inner }

func (t *RepeatTendency) resolveValues() error {
	t.period = t.inner.Length()
	if t.period <= 0 {
		return valueErrorf("repeated waveform has length %g", t.period)
	}

	return nil
}

func (t *RepeatTendency) boundary() boundary {
	if t.period <= 0 {
		return boundary{}
	}
	b := boundary{
		startValue: t.inner.StartValue(),
		startDeriv: t.inner.StartDerivative(),
	}
	r := math.Mod(t.duration, t.period)
	if r <= t.env.Tolerance*t.period || t.period-r <= t.env.Tolerance*t.period {
		b.endValue = t.inner.EndValue()
		b.endDeriv = t.inner.EndDerivative()
		return b
	}
	at := []float64{t.inner.Start() + r}
	b.endValue = t.inner.Values(at)[0]
	b.endDeriv = t.inner.Derivatives(at)[0]

	return b
}

func (t *RepeatTendency) startLinks() (bool, bool) { return false, false }

func (t *RepeatTendency) local(times []float64) []float64 {
	out := make([]float64, len(times))
	s := t.inner.Start()
	for i, tt := range times {
		r := math.Mod(tt-t.start, t.period)
		if r < 0 {
			r += t.period
		}
		out[i] = s + r
	}

	return out
}

// Values evaluates the nested waveform at the wrapped times.
func (t *RepeatTendency) Values(times []float64) []float64 {
	if t.period <= 0 {
		return make([]float64, len(times))
	}

	return t.inner.Values(t.local(times))
}

// Derivatives evaluates the nested derivative at the wrapped times.
func (t *RepeatTendency) Derivatives(times []float64) []float64 {
	if t.period <= 0 {
		return make([]float64, len(times))
	}

	return t.inner.Derivatives(t.local(times))
}

// Generate tiles the nested natural grid across [start, end], closing on the
// end point.
func (t *RepeatTendency) Generate() ([]float64, []float64) {
	if t.period <= 0 || t.duration <= 0 {
		return []float64{t.start, t.end}, []float64{t.StartValue(), t.EndValue()}
	}

	innerTimes, innerValues := t.inner.Generate()
	s := t.inner.Start()
	limit := t.env.Sampling.MaxPoints
	var times, values []float64
	for offset := t.start; offset < t.end && len(times) < limit; offset += t.period {
		for i, it := range innerTimes {
			tt := it - s + offset
			if tt > t.end {
				break
			}
			times = append(times, tt)
			values = append(values, innerValues[i])
		}
	}
	if n := len(times); n == 0 || times[n-1] < t.end {
		times = append(times, t.end)
		values = append(values, t.EndValue())
	}

	return times, values
}
