package config

import (
	"math"
	"sort"
)

// derivativeStep is the relative half-width of the central difference used
// for derived waveforms.
const derivativeStep = 1e-6

// Values evaluates the named waveform at times. Derived waveforms require a
// resolved tree.
func (t *Tree) Values(name string, times []float64) ([]float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.values(name, times, make(map[string][]float64))
}

// values memoises per call so shared references are evaluated once.
func (t *Tree) values(name string, times []float64, memo map[string][]float64) ([]float64, error) {
	if v, ok := memo[name]; ok {
		return v, nil
	}
	e, ok := t.entries[name]
	if !ok {
		return nil, configErrorf(ErrUnknownWaveform, "%q", name)
	}
	var out []float64
	if e.Derived() {
		if t.graph == nil || e.Expression == nil {
			return nil, configErrorf(ErrUnresolved, "%q", name)
		}
		v, err := e.Expression.Eval(len(times), func(ref string) ([]float64, error) {
			return t.values(ref, times, memo)
		})
		if err != nil {
			return nil, err
		}
		out = v
	} else {
		out = e.Waveform.Values(times)
	}
	memo[name] = out

	return out, nil
}

// Derivatives evaluates the time derivative of the named waveform. Plain
// waveforms use their analytic derivatives; derived waveforms use central
// differences of their values.
func (t *Tree) Derivatives(name string, times []float64) ([]float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[name]
	if !ok {
		return nil, configErrorf(ErrUnknownWaveform, "%q", name)
	}
	if !e.Derived() {
		return e.Waveform.Derivatives(times), nil
	}

	n := len(times)
	probe := make([]float64, 2*n)
	steps := make([]float64, n)
	for i, tt := range times {
		h := derivativeStep * math.Max(1, math.Abs(tt))
		steps[i] = h
		probe[i] = tt - h
		probe[n+i] = tt + h
	}
	v, err := t.values(name, probe, make(map[string][]float64))
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = (v[n+i] - v[i]) / (2 * steps[i])
	}

	return out, nil
}

// Times returns the natural sample times of the named waveform. A derived
// waveform uses the sorted union of the times of everything it references.
func (t *Tree) Times(name string) ([]float64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	set := make(map[float64]struct{})
	if err := t.collectTimes(name, set, make(map[string]bool)); err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(set))
	for tt := range set {
		out = append(out, tt)
	}
	sort.Float64s(out)

	return out, nil
}

func (t *Tree) collectTimes(name string, set map[float64]struct{}, seen map[string]bool) error {
	if seen[name] {
		return nil
	}
	seen[name] = true
	e, ok := t.entries[name]
	if !ok {
		return configErrorf(ErrUnknownWaveform, "%q", name)
	}
	if !e.Derived() {
		times, _ := e.Waveform.Generate()
		for _, tt := range times {
			set[tt] = struct{}{}
		}
		return nil
	}
	if t.graph == nil || e.Expression == nil {
		return configErrorf(ErrUnresolved, "%q", name)
	}
	for _, ref := range e.Expression.References() {
		if err := t.collectTimes(ref, set, seen); err != nil {
			return err
		}
	}

	return nil
}
