package tendency

import (
	"fmt"
	"sort"
)

// Kind identifies a tendency variant.
type Kind int

const (
	KindConstant Kind = iota
	KindLinear
	KindSmooth
	KindSine
	KindSawtooth
	KindSquare
	KindTriangle
	KindPiecewise
	KindRepeat
)

var kindNames = [...]string{
	KindConstant:  "constant",
	KindLinear:    "linear",
	KindSmooth:    "smooth",
	KindSine:      "sine",
	KindSawtooth:  "sawtooth",
	KindSquare:    "square",
	KindTriangle:  "triangle",
	KindPiecewise: "piecewise",
	KindRepeat:    "repeat",
}

// String returns the canonical type name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// Type names accepted in specs.
const (
	TypeConstant     = "constant"
	TypeLinear       = "linear"
	TypeSmooth       = "smooth"
	TypeSine         = "sine"
	TypeSineWave     = "sine-wave"
	TypeSawtooth     = "sawtooth"
	TypeSawtoothWave = "sawtooth-wave"
	TypeSquare       = "square"
	TypeSquareWave   = "square-wave"
	TypeTriangle     = "triangle"
	TypeTriangleWave = "triangle-wave"
	TypePiecewise    = "piecewise"
	TypeRepeat       = "repeat"
)

// Factory builds a tendency from a spec.
type Factory func(spec Spec, env Env) (Tendency, error)

func periodicFactory(shape Shape) Factory {
	return func(spec Spec, env Env) (Tendency, error) { return NewPeriodic(shape, spec, env) }
}

var factories = map[string]Factory{
	TypeConstant:     func(s Spec, e Env) (Tendency, error) { return NewConstant(s, e) },
	TypeLinear:       func(s Spec, e Env) (Tendency, error) { return NewLinear(s, e) },
	TypeSmooth:       func(s Spec, e Env) (Tendency, error) { return NewSmooth(s, e) },
	TypeSine:         periodicFactory(ShapeSine),
	TypeSineWave:     periodicFactory(ShapeSine),
	TypeSawtooth:     periodicFactory(ShapeSawtooth),
	TypeSawtoothWave: periodicFactory(ShapeSawtooth),
	TypeSquare:       periodicFactory(ShapeSquare),
	TypeSquareWave:   periodicFactory(ShapeSquare),
	TypeTriangle:     periodicFactory(ShapeTriangle),
	TypeTriangleWave: periodicFactory(ShapeTriangle),
	TypePiecewise:    func(s Spec, e Env) (Tendency, error) { return NewPiecewise(s, e) },
	TypeRepeat:       func(s Spec, e Env) (Tendency, error) { return NewRepeat(s, e) },
}

// Lookup returns the factory registered for typ.
func Lookup(typ string) (Factory, error) {
	f, ok := factories[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typ)
	}

	return f, nil
}

// Build constructs the tendency described by spec.
func Build(spec Spec, env Env) (Tendency, error) {
	f, err := Lookup(spec.Type)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", spec.Line, err)
	}

	return f(spec, env)
}

// Types lists every accepted type name, sorted.
func Types() []string {
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
