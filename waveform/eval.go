package waveform

// Generate concatenates the natural grids of all tendencies in list order.
func (w *Waveform) Generate() ([]float64, []float64) {
	var times, values []float64
	for _, tt := range w.tendencies {
		ts, vs := tt.Generate()
		times = append(times, ts...)
		values = append(values, vs...)
	}

	return times, values
}

// Values evaluates the waveform at arbitrary times.
func (w *Waveform) Values(times []float64) []float64 {
	out, covered := w.evaluate(times, false)
	w.fillGaps(times, out, covered)

	return out
}

// Derivatives evaluates the waveform derivative at arbitrary times; gaps,
// the final end point and times outside the waveform are 0.
func (w *Waveform) Derivatives(times []float64) []float64 {
	out, _ := w.evaluate(times, true)

	return out
}

// evaluate dispatches every time to the last tendency holding it, one batch
// per tendency. The final end point belongs to the waveform for values only.
func (w *Waveform) evaluate(times []float64, derivative bool) ([]float64, []bool) {
	out := make([]float64, len(times))
	covered := make([]bool, len(times))
	last := len(w.tendencies) - 1

	idx := make([]int, 0, len(times))
	batch := make([]float64, 0, len(times))
	for i, tt := range w.tendencies {
		idx, batch = idx[:0], batch[:0]
		start, end := tt.Start(), tt.End()
		for k, t := range times {
			if t >= start && (t < end || (i == last && t == end && !derivative)) {
				idx = append(idx, k)
				batch = append(batch, t)
			}
		}
		if len(batch) == 0 {
			continue
		}
		var vs []float64
		if derivative {
			vs = tt.Derivatives(batch)
		} else {
			vs = tt.Values(batch)
		}
		for j, k := range idx {
			out[k] = vs[j]
			covered[k] = true
		}
	}

	return out, covered
}

// fillGaps interpolates uncovered times that fall between two consecutive
// tendencies.
func (w *Waveform) fillGaps(times, out []float64, covered []bool) {
	for i := 1; i < len(w.tendencies); i++ {
		prev, next := w.tendencies[i-1], w.tendencies[i]
		t0, t1 := prev.End(), next.Start()
		if !(t1 > t0) {
			continue
		}
		v0, v1 := prev.EndValue(), next.StartValue()
		for k, t := range times {
			if covered[k] || t < t0 || t >= t1 {
				continue
			}
			out[k] = v0 + (v1-v0)*(t-t0)/(t1-t0)
			covered[k] = true
		}
	}
}
