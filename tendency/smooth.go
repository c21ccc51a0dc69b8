package tendency

// SmoothTendency is a clamped cubic Hermite segment. Boundary values default
// to the neighbours' boundary values (0 without a neighbour, on both ends);
// boundary derivatives always come from the neighbours and are never user
// settable.
type SmoothTendency struct {
	Base
	userFrom, userTo *float64
	from, to         float64
	dStart, dEnd     float64
}

// NewSmooth builds a smooth tendency from spec.
func NewSmooth(spec Spec, env Env) (*SmoothTendency, error) {
	r := newFieldReader(spec)
	t := &SmoothTendency{Base: newBase(KindSmooth, r, env)}
	t.userFrom = r.float("from")
	t.userTo = r.float("to")
	if r.err != nil {
		return nil, r.err
	}
	t.init(t, r)

	return t, nil
}

func (t *SmoothTendency) resolveValues() error {
	if t.userFrom != nil {
		t.from = *t.userFrom
	} else {
		t.from = t.prevEndValue(0)
	}
	if t.userTo != nil {
		t.to = *t.userTo
	} else {
		t.to = t.nextStartValue(0)
	}
	t.dStart = t.prevEndDerivative(0)
	t.dEnd = t.nextStartDerivative(0)

	return nil
}

func (t *SmoothTendency) boundary() boundary {
	return boundary{startValue: t.from, endValue: t.to, startDeriv: t.dStart, endDeriv: t.dEnd}
}

func (t *SmoothTendency) startLinks() (bool, bool) {
	return t.userFrom == nil && t.prev != nil, t.prev != nil
}

// Generate samples the spline on an evenly spaced grid.
func (t *SmoothTendency) Generate() ([]float64, []float64) {
	times := linspace(t.start, t.end, t.env.Sampling.SmoothPoints)
	return times, t.Values(times)
}

// Values evaluates the Hermite basis.
func (t *SmoothTendency) Values(times []float64) []float64 {
	out := make([]float64, len(times))
	h := t.duration
	if h <= 0 {
		for i := range out {
			out[i] = t.from
		}
		return out
	}
	for i, tt := range times {
		s := (tt - t.start) / h
		s2, s3 := s*s, s*s*s
		h00 := 2*s3 - 3*s2 + 1
		h10 := s3 - 2*s2 + s
		h01 := -2*s3 + 3*s2
		h11 := s3 - s2
		out[i] = h00*t.from + h10*h*t.dStart + h01*t.to + h11*h*t.dEnd
	}

	return out
}

// Derivatives evaluates the analytic time derivative of the Hermite basis.
func (t *SmoothTendency) Derivatives(times []float64) []float64 {
	out := make([]float64, len(times))
	h := t.duration
	if h <= 0 {
		return out
	}
	for i, tt := range times {
		s := (tt - t.start) / h
		s2 := s * s
		d00 := 6*s2 - 6*s
		d10 := 3*s2 - 4*s + 1
		d01 := -6*s2 + 6*s
		d11 := 3*s2 - 2*s
		out[i] = (d00*t.from+d01*t.to)/h + d10*t.dStart + d11*t.dEnd
	}

	return out
}
