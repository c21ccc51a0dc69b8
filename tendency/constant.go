package tendency

// ConstantTendency holds a single level. Without a user value it follows the
// previous tendency's end value, else the next tendency's start value, else 0.
type ConstantTendency struct {
	Base
	userValue *float64
	value     float64
}

// NewConstant builds a constant tendency from spec.
func NewConstant(spec Spec, env Env) (*ConstantTendency, error) {
	r := newFieldReader(spec)
	t := &ConstantTendency{Base: newBase(KindConstant, r, env)}
	t.userValue = r.float("value")
	if r.err != nil {
		return nil, r.err
	}
	t.init(t, r)

	return t, nil
}

// Value returns the resolved level.
func (t *ConstantTendency) Value() float64 { return t.value }

func (t *ConstantTendency) resolveValues() error {
	if t.userValue != nil {
		t.value = *t.userValue
	} else {
		t.value = t.inheritedLevel()
	}

	return nil
}

func (t *ConstantTendency) boundary() boundary {
	return boundary{startValue: t.value, endValue: t.value}
}

func (t *ConstantTendency) startLinks() (bool, bool) {
	return t.userValue == nil && t.prev != nil, false
}

// Generate returns the two end points.
func (t *ConstantTendency) Generate() ([]float64, []float64) {
	return []float64{t.start, t.end}, []float64{t.value, t.value}
}

// Values returns the level at every time.
func (t *ConstantTendency) Values(times []float64) []float64 {
	return fill(len(times), t.value)
}

// Derivatives returns zeros.
func (t *ConstantTendency) Derivatives(times []float64) []float64 {
	return make([]float64, len(times))
}
