package waveform

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/wavechain/annotation"
	"github.com/katalvlaran/wavechain/tendency"
)

// Waveform is an ordered chain of tendencies. It owns its tendencies; their
// Prev/Next links point back into the same slice.
type Waveform struct {
	name       string
	tendencies []tendency.Tendency
	notes      *annotation.Set
	cfg        config
}

// New builds the waveform described by specs. Structural spec errors abort
// construction; numeric problems become annotations.
func New(name string, specs []tendency.Spec, opts ...Option) (*Waveform, error) {
	w := &Waveform{name: name, cfg: newConfig(opts...)}
	w.notes = w.cfg.notes

	env := tendency.Env{
		Logger:    w.cfg.logger,
		Sampling:  w.cfg.sampling,
		Tolerance: w.cfg.tolerance,
		Nest:      w.nest,
	}
	w.tendencies = make([]tendency.Tendency, 0, len(specs))
	for _, spec := range specs {
		tt, err := tendency.Build(spec, env)
		if err != nil {
			return nil, fmt.Errorf("waveform %q: %w", name, err)
		}
		if n := len(w.tendencies); n > 0 {
			prev := w.tendencies[n-1]
			tt.SetPrevious(prev)
			prev.SetNext(tt)
		}
		w.tendencies = append(w.tendencies, tt)
	}
	w.annotate()

	w.cfg.logger.Debug("waveform built",
		slog.String("name", name),
		slog.Int("tendencies", len(w.tendencies)),
		slog.Int("annotations", w.notes.Len()))

	return w, nil
}

func (w *Waveform) nest(specs []tendency.Spec) (tendency.Sequence, error) {
	return New(w.name, specs, w.cfg.options()...)
}

func (w *Waveform) annotate() {
	tol := w.cfg.tolerance
	for i, tt := range w.tendencies {
		line := tt.Line()
		if err := tt.TimeError(); err != nil {
			w.notes.AddError(line, "%s: %v", tt.Kind(), err)
		}
		if err := tt.ValueError(); err != nil {
			w.notes.AddError(line, "%s: %v", tt.Kind(), err)
		}
		for _, f := range tt.UnknownFields() {
			w.notes.AddError(line, "%s: unknown field %q", tt.Kind(), f)
		}
		if i == 0 {
			continue
		}
		prevEnd := w.tendencies[i-1].End()
		scale := tol * math.Max(1, math.Abs(prevEnd))
		switch {
		case tt.Start() > prevEnd+scale:
			w.notes.AddWarning(line, "gap between %g and %g", prevEnd, tt.Start())
		case tt.Start() < prevEnd-scale:
			w.notes.AddWarning(line, "overlaps previous tendency between %g and %g", tt.Start(), prevEnd)
		}
	}
}

// Name returns the waveform name.
func (w *Waveform) Name() string { return w.name }

// Annotations returns the set problems were recorded in.
func (w *Waveform) Annotations() *annotation.Set { return w.notes }

// Tendencies returns the chain in list order.
func (w *Waveform) Tendencies() []tendency.Tendency {
	out := make([]tendency.Tendency, len(w.tendencies))
	copy(out, w.tendencies)

	return out
}

// Len reports the number of tendencies.
func (w *Waveform) Len() int { return len(w.tendencies) }

// Length is the sum of the tendency durations.
func (w *Waveform) Length() float64 {
	var sum float64
	for _, tt := range w.tendencies {
		sum += tt.Duration()
	}

	return sum
}

// Start returns the first tendency's start, 0 when empty.
func (w *Waveform) Start() float64 {
	if len(w.tendencies) == 0 {
		return 0
	}

	return w.tendencies[0].Start()
}

// End returns the last tendency's end, 0 when empty.
func (w *Waveform) End() float64 {
	if len(w.tendencies) == 0 {
		return 0
	}

	return w.tendencies[len(w.tendencies)-1].End()
}

// StartValue returns the first tendency's start value.
func (w *Waveform) StartValue() float64 {
	if len(w.tendencies) == 0 {
		return 0
	}

	return w.tendencies[0].StartValue()
}

// EndValue returns the last tendency's end value.
func (w *Waveform) EndValue() float64 {
	if len(w.tendencies) == 0 {
		return 0
	}

	return w.tendencies[len(w.tendencies)-1].EndValue()
}

// StartDerivative returns the first tendency's start derivative.
func (w *Waveform) StartDerivative() float64 {
	if len(w.tendencies) == 0 {
		return 0
	}

	return w.tendencies[0].StartDerivative()
}

// EndDerivative returns the last tendency's end derivative.
func (w *Waveform) EndDerivative() float64 {
	if len(w.tendencies) == 0 {
		return 0
	}

	return w.tendencies[len(w.tendencies)-1].EndDerivative()
}

var _ tendency.Sequence = (*Waveform)(nil)
