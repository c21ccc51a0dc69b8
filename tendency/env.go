// SPDX-License-Identifier: MIT
// Package: wavechain/tendency
//
// env.go - construction environment shared by all factories.
//
// Design:
//   • Env is passed by value; the owning waveform builds one per waveform.
//   • Sampling holds the natural-grid resolution knobs with named defaults.
//   • Nest is how a repeat tendency builds its inner waveform without the
//     tendency package importing the waveform package.

package tendency

import (
	"log/slog"
	"math"
)

// Natural-grid defaults.
const (
	DefaultSinePointsPerPeriod = 100       // samples per period of a sine
	DefaultSmoothPoints        = 100       // samples across a smooth tendency
	DefaultEdgeEpsilon         = 1e-9      // time offset of the sample before a vertical edge
	DefaultMaxPoints           = 1_000_000 // cap on any single natural grid
	DefaultTolerance           = 1e-9      // solver tolerance
	maxCascadeDepth            = 1024      // hop budget for one change cascade
	unitDuration               = 1.0       // default duration
	twoPi                      = 2 * math.Pi
)

// Sampling controls the natural sample grid emitted by Generate.
type Sampling struct {
	SinePointsPerPeriod int
	SmoothPoints        int
	EdgeEpsilon         float64
	MaxPoints           int
}

// DefaultSampling returns the documented defaults.
func DefaultSampling() Sampling {
	return Sampling{
		SinePointsPerPeriod: DefaultSinePointsPerPeriod,
		SmoothPoints:        DefaultSmoothPoints,
		EdgeEpsilon:         DefaultEdgeEpsilon,
		MaxPoints:           DefaultMaxPoints,
	}
}

// normalized fills zero or negative knobs with defaults.
func (s Sampling) normalized() Sampling {
	d := DefaultSampling()
	if s.SinePointsPerPeriod <= 0 {
		s.SinePointsPerPeriod = d.SinePointsPerPeriod
	}
	if s.SmoothPoints < 2 {
		s.SmoothPoints = d.SmoothPoints
	}
	if s.EdgeEpsilon <= 0 {
		s.EdgeEpsilon = d.EdgeEpsilon
	}
	if s.MaxPoints < 2 {
		s.MaxPoints = d.MaxPoints
	}

	return s
}

// Sequence is the view a repeat tendency needs of its nested waveform.
type Sequence interface {
	Start() float64
	End() float64
	Length() float64
	StartValue() float64
	EndValue() float64
	StartDerivative() float64
	EndDerivative() float64
	Generate() (times, values []float64)
	Values(times []float64) []float64
	Derivatives(times []float64) []float64
}

// Env carries everything a factory needs besides the spec itself.
type Env struct {
	Logger    *slog.Logger
	Sampling  Sampling
	Tolerance float64

	// Nest builds a nested waveform for repeat tendencies. When nil, repeat
	// specs fail with ErrUnsupportedType.
	Nest func(specs []Spec) (Sequence, error)
}

func (e Env) normalized() Env {
	if e.Logger == nil {
		e.Logger = slog.Default()
	}
	if e.Tolerance <= 0 {
		e.Tolerance = DefaultTolerance
	}
	e.Sampling = e.Sampling.normalized()

	return e
}
