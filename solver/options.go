package solver

// DefaultTolerance is the relative residual accepted when verifying a row.
const DefaultTolerance = 1e-9

// pivotEpsilon is the magnitude below which a pivot counts as zero.
const pivotEpsilon = 1e-12

// Option configures Solve.
type Option func(*solveConfig)

type solveConfig struct {
	tol float64
}

// WithTolerance overrides DefaultTolerance. Non-positive values are ignored.
func WithTolerance(eps float64) Option {
	return func(c *solveConfig) {
		if eps > 0 {
			c.tol = eps
		}
	}
}

func newSolveConfig(opts ...Option) solveConfig {
	cfg := solveConfig{tol: DefaultTolerance}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
