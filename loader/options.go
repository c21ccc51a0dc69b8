package loader

import (
	"log/slog"

	"github.com/katalvlaran/wavechain/tendency"
	"github.com/katalvlaran/wavechain/waveform"
)

// DefaultMaxBytes caps the size of a document.
const DefaultMaxBytes = 4 << 20

// Option configures Parse and LoadFile.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	sampling  tendency.Sampling
	tolerance float64
	maxBytes  int64
}

// WithLogger sets the logger handed to the tree and every waveform.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSampling sets the natural-grid resolution of every waveform.
func WithSampling(s tendency.Sampling) Option {
	return func(o *options) { o.sampling = s }
}

// WithTolerance sets the constraint solver tolerance.
func WithTolerance(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.tolerance = eps
		}
	}
}

// WithMaxBytes overrides DefaultMaxBytes. Non-positive values are ignored.
func WithMaxBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{
		logger:    slog.Default(),
		sampling:  tendency.DefaultSampling(),
		tolerance: tendency.DefaultTolerance,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) waveformOptions() []waveform.Option {
	return []waveform.Option{
		waveform.WithLogger(o.logger),
		waveform.WithSampling(o.sampling),
		waveform.WithTolerance(o.tolerance),
	}
}
