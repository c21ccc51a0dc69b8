package waveform

import (
	"log/slog"

	"github.com/katalvlaran/wavechain/annotation"
	"github.com/katalvlaran/wavechain/tendency"
)

// Option configures New.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	notes     *annotation.Set
	sampling  tendency.Sampling
	tolerance float64
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAnnotations makes New append to an existing set instead of a fresh one.
// Nested waveforms share their parent's set this way.
func WithAnnotations(s *annotation.Set) Option {
	return func(c *config) {
		if s != nil {
			c.notes = s
		}
	}
}

// WithSampling sets the natural-grid resolution. Zero fields keep defaults.
func WithSampling(s tendency.Sampling) Option {
	return func(c *config) { c.sampling = s }
}

// WithTolerance sets the constraint solver tolerance. Non-positive values are
// ignored.
func WithTolerance(eps float64) Option {
	return func(c *config) {
		if eps > 0 {
			c.tolerance = eps
		}
	}
}

func newConfig(opts ...Option) config {
	cfg := config{
		logger:    slog.Default(),
		sampling:  tendency.DefaultSampling(),
		tolerance: tendency.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.notes == nil {
		cfg.notes = annotation.New()
	}

	return cfg
}

// options rebuilds the option list for a nested waveform.
func (c config) options() []Option {
	return []Option{
		WithLogger(c.logger),
		WithAnnotations(c.notes),
		WithSampling(c.sampling),
		WithTolerance(c.tolerance),
	}
}
