package tendency

import (
	"fmt"
	"sort"
)

// Spec is the raw, partially specified description of one tendency as it
// comes out of a document: a type discriminator, the source line used for
// diagnostics and the variant fields.
//
// Field values may be any Go numeric type, a []float64 or []any of numbers
// (piecewise arrays), or a []Spec / []any of Spec (repeat's nested waveform).
type Spec struct {
	Type   string
	Line   int
	Fields map[string]any
}

// ConstantSpec is the shorthand a bare scalar expands to.
func ConstantSpec(value float64, line int) Spec {
	return Spec{Type: TypeConstant, Line: line, Fields: map[string]any{"value": value}}
}

// FromRaw converts a decoded document value into a Spec. A bare number becomes
// a constant; a map must carry a string "type" key.
func FromRaw(raw any, line int) (Spec, error) {
	if v, ok := toFloat(raw); ok {
		return ConstantSpec(v, line), nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return Spec{}, fmt.Errorf("line %d: %w: %T is not a tendency", line, ErrFieldType, raw)
	}
	typ, present := m["type"]
	if !present {
		return Spec{}, fmt.Errorf("line %d: %w", line, ErrMissingType)
	}
	name, ok := typ.(string)
	if !ok {
		return Spec{}, fmt.Errorf("line %d: %w: type must be a string", line, ErrFieldType)
	}
	fields := make(map[string]any, len(m))
	for k, v := range m {
		if k != "type" {
			fields[k] = v
		}
	}

	return Spec{Type: name, Line: line, Fields: fields}, nil
}

// fieldReader reads typed fields off a Spec and remembers which keys were
// consumed so the rest can be reported as unknown. The first type error
// sticks; later reads return zero values.
type fieldReader struct {
	spec Spec
	used map[string]bool
	err  error
}

func newFieldReader(spec Spec) *fieldReader {
	return &fieldReader{spec: spec, used: make(map[string]bool, len(spec.Fields))}
}

// float returns nil when the key is absent or explicitly null.
func (r *fieldReader) float(key string) *float64 {
	raw, ok := r.lookup(key)
	if !ok || r.err != nil {
		return nil
	}
	v, ok := toFloat(raw)
	if !ok {
		r.err = specErrorf(r.spec, ErrFieldType, "%s must be a number, got %T", key, raw)
		return nil
	}

	return &v
}

// floats returns nil when the key is absent.
func (r *fieldReader) floats(key string) []float64 {
	raw, ok := r.lookup(key)
	if !ok || r.err != nil {
		return nil
	}
	switch xs := raw.(type) {
	case []float64:
		out := make([]float64, len(xs))
		copy(out, xs)
		return out
	case []any:
		out := make([]float64, len(xs))
		for i, x := range xs {
			v, ok := toFloat(x)
			if !ok {
				r.err = specErrorf(r.spec, ErrFieldType, "%s[%d] must be a number, got %T", key, i, x)
				return nil
			}
			out[i] = v
		}
		return out
	}
	r.err = specErrorf(r.spec, ErrFieldType, "%s must be a list of numbers, got %T", key, raw)

	return nil
}

// specs returns nil when the key is absent.
func (r *fieldReader) specs(key string) []Spec {
	raw, ok := r.lookup(key)
	if !ok || r.err != nil {
		return nil
	}
	switch xs := raw.(type) {
	case []Spec:
		return xs
	case []any:
		out := make([]Spec, 0, len(xs))
		for i, x := range xs {
			switch s := x.(type) {
			case Spec:
				out = append(out, s)
			default:
				spec, err := FromRaw(x, r.spec.Line)
				if err != nil {
					r.err = specErrorf(r.spec, err, "%s[%d]", key, i)
					return nil
				}
				out = append(out, spec)
			}
		}
		return out
	}
	r.err = specErrorf(r.spec, ErrFieldType, "%s must be a list of tendencies, got %T", key, raw)

	return nil
}

func (r *fieldReader) lookup(key string) (any, bool) {
	r.used[key] = true
	raw, ok := r.spec.Fields[key]
	if !ok || raw == nil {
		return nil, false
	}

	return raw, true
}

// unknown lists the fields nobody asked for, sorted.
func (r *fieldReader) unknown() []string {
	var out []string
	for k := range r.spec.Fields {
		if !r.used[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	return out
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}

	return 0, false
}
