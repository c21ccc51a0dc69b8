package tendency_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavechain/tendency"
)

const eps = 1e-9

func build(t *testing.T, typ string, fields map[string]any) tendency.Tendency {
	t.Helper()
	tt, err := tendency.Build(tendency.Spec{Type: typ, Line: 1, Fields: fields}, tendency.Env{})
	require.NoError(t, err)

	return tt
}

// link chains ts in order the same way a waveform does.
func link(ts ...tendency.Tendency) {
	for i := 1; i < len(ts); i++ {
		ts[i].SetPrevious(ts[i-1])
		ts[i-1].SetNext(ts[i])
	}
}

func TestTiming_Closure(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]any
		want   [3]float64
	}{
		{"none", map[string]any{}, [3]float64{0, 1, 1}},
		{"start", map[string]any{"start": 2}, [3]float64{2, 1, 3}},
		{"duration", map[string]any{"duration": 3}, [3]float64{0, 3, 3}},
		{"end", map[string]any{"end": 4}, [3]float64{0, 4, 4}},
		{"start+end", map[string]any{"start": 1.5, "end": 4}, [3]float64{1.5, 2.5, 4}},
		{"duration+end", map[string]any{"duration": 2, "end": 10}, [3]float64{8, 2, 10}},
		{"all consistent", map[string]any{"start": 1, "duration": 2, "end": 3}, [3]float64{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tt := build(t, tendency.TypeConstant, tc.fields)
			require.NoError(t, tt.TimeError())
			assert.InDelta(t, tc.want[0], tt.Start(), eps)
			assert.InDelta(t, tc.want[1], tt.Duration(), eps)
			assert.InDelta(t, tc.want[2], tt.End(), eps)
			assert.InDelta(t, tt.Start()+tt.Duration(), tt.End(), eps)
			assert.Greater(t, tt.Duration(), 0.0)
		})
	}
}

func TestTiming_Errors(t *testing.T) {
	tt := build(t, tendency.TypeConstant, map[string]any{"start": 0, "duration": 1, "end": 5})
	assert.ErrorIs(t, tt.TimeError(), tendency.ErrTimeInconsistent)
	assert.Equal(t, []float64{0, 1, 1}, []float64{tt.Start(), tt.Duration(), tt.End()})

	tt = build(t, tendency.TypeConstant, map[string]any{"start": 2, "end": 1})
	assert.ErrorIs(t, tt.TimeError(), tendency.ErrNonPositiveDuration)

	tt = build(t, tendency.TypeLinear, map[string]any{"from": 0, "to": 1, "duration": 0})
	require.ErrorIs(t, tt.TimeError(), tendency.ErrNonPositiveDuration)
	assert.Contains(t, tt.TimeError().Error(), "start 0, end 0")
	assert.NotContains(t, tt.TimeError().Error(), "-0")
}

func TestTiming_FollowsPrevious(t *testing.T) {
	a := build(t, tendency.TypeConstant, map[string]any{"start": 0, "end": 2})
	b := build(t, tendency.TypeConstant, map[string]any{"duration": 3})
	c := build(t, tendency.TypeConstant, map[string]any{})
	link(a, b, c)

	assert.InDelta(t, 2.0, b.Start(), eps)
	assert.InDelta(t, 5.0, b.End(), eps)
	assert.InDelta(t, 5.0, c.Start(), eps)
	assert.InDelta(t, 6.0, c.End(), eps)
}

func TestLinear_Values(t *testing.T) {
	tt := build(t, tendency.TypeLinear, map[string]any{"duration": 10, "from": 0, "to": 100})
	lin := tt.(*tendency.LinearTendency)
	require.NoError(t, tt.ValueError())
	assert.InDelta(t, 10.0, lin.Rate(), eps)
	assert.InDeltaSlice(t, []float64{0, 50, 100}, tt.Values([]float64{0, 5, 10}), eps)
	assert.Equal(t, []float64{10, 10}, tt.Derivatives([]float64{0, 3}))

	tt = build(t, tendency.TypeLinear, map[string]any{"duration": 10, "from": 100, "to": 0, "rate": 5})
	assert.ErrorIs(t, tt.ValueError(), tendency.ErrValueInconsistent)
	assert.Equal(t, 0.0, tt.StartValue())
	assert.Equal(t, 0.0, tt.EndValue())

	tt = build(t, tendency.TypeLinear, map[string]any{"from": 1, "to": 2, "rate": 0})
	assert.ErrorIs(t, tt.ValueError(), tendency.ErrValueInconsistent)
}

func TestLinear_InheritsNeighbours(t *testing.T) {
	a := build(t, tendency.TypeLinear, map[string]any{"from": 0})
	b := build(t, tendency.TypeConstant, map[string]any{"value": 4})
	link(a, b)

	lin := a.(*tendency.LinearTendency)
	assert.InDelta(t, 4.0, lin.To(), eps)
	assert.InDelta(t, 4.0, lin.Rate(), eps)

	c := build(t, tendency.TypeConstant, map[string]any{"value": -2})
	d := build(t, tendency.TypeLinear, map[string]any{"rate": 3})
	link(c, d)
	assert.InDelta(t, -2.0, d.StartValue(), eps)
	assert.InDelta(t, 1.0, d.EndValue(), eps)
}

func TestConstant_Inheritance(t *testing.T) {
	prev := build(t, tendency.TypeLinear, map[string]any{"from": 0, "to": 7})
	c := build(t, tendency.TypeConstant, nil)
	link(prev, c)
	assert.InDelta(t, 7.0, c.(*tendency.ConstantTendency).Value(), eps)

	a := build(t, tendency.TypeConstant, map[string]any{"value": 3})
	b := build(t, tendency.TypeConstant, nil)
	z := build(t, tendency.TypeConstant, map[string]any{"value": 9})
	link(a, b, z)
	assert.InDelta(t, 3.0, b.StartValue(), eps, "previous wins over next")

	b = build(t, tendency.TypeConstant, nil)
	z = build(t, tendency.TypeConstant, map[string]any{"value": 9})
	link(b, z)
	assert.InDelta(t, 9.0, b.StartValue(), eps)
}

func TestPeriodic_DerivativeIdentities(t *testing.T) {
	sine := build(t, tendency.TypeSine, map[string]any{"amplitude": 1, "frequency": 1, "phase": 0})
	assert.InDelta(t, 2*math.Pi, sine.StartDerivative(), eps)
	assert.InDelta(t, 0.0, sine.StartValue(), eps)

	square := build(t, tendency.TypeSquareWave, map[string]any{"amplitude": 2, "frequency": 3, "duration": 2.3})
	assert.Equal(t, 0.0, square.StartDerivative())
	assert.Equal(t, 0.0, square.EndDerivative())
	for _, d := range square.Derivatives([]float64{0, 0.1, 0.7, 2.3}) {
		assert.Equal(t, 0.0, d)
	}
}

func TestPeriodic_Levels(t *testing.T) {
	tt := build(t, tendency.TypeSine, map[string]any{"min": -1, "max": 3, "period": 4})
	p := tt.(*tendency.PeriodicTendency)
	require.NoError(t, tt.ValueError())
	assert.InDelta(t, 1.0, p.BaseLevel(), eps)
	assert.InDelta(t, 2.0, p.Amplitude(), eps)
	assert.InDelta(t, 0.25, p.Frequency(), eps)
	assert.InDelta(t, 4.0, p.Period(), eps)

	tt = build(t, tendency.TypeSine, map[string]any{"frequency": 2, "period": 1})
	assert.ErrorIs(t, tt.ValueError(), tendency.ErrValueInconsistent)
	assert.InDelta(t, 1.0, tt.(*tendency.PeriodicTendency).Frequency(), eps)

	tt = build(t, tendency.TypeTriangle, map[string]any{"base": 0, "amplitude": 1, "min": 5})
	assert.ErrorIs(t, tt.ValueError(), tendency.ErrValueInconsistent)
	assert.Equal(t, 0.0, tt.(*tendency.PeriodicTendency).Amplitude())

	tt = build(t, tendency.TypeSawtooth, map[string]any{"frequency": -1})
	assert.ErrorIs(t, tt.ValueError(), tendency.ErrValueInconsistent)
}

func TestPeriodic_BaseFollowsPrevious(t *testing.T) {
	a := build(t, tendency.TypeLinear, map[string]any{"from": 0, "to": 6})
	b := build(t, tendency.TypeSine, map[string]any{"amplitude": 1})
	link(a, b)
	assert.InDelta(t, 6.0, b.(*tendency.PeriodicTendency).BaseLevel(), eps)

	// A wave whose base follows the ramp does not feed back into the ramp.
	c := build(t, tendency.TypeLinear, map[string]any{"from": 0})
	d := build(t, tendency.TypeSquare, nil)
	link(c, d)
	assert.InDelta(t, 0.0, c.EndValue(), eps)
	assert.InDelta(t, 0.0, d.(*tendency.PeriodicTendency).BaseLevel(), eps)
}

func TestPeriodic_MinimalPoints(t *testing.T) {
	env := tendency.DefaultSampling()

	square := build(t, tendency.TypeSquare, map[string]any{"duration": 1})
	times, values := square.Generate()
	assert.InDeltaSlice(t, []float64{0, 0.5 - env.EdgeEpsilon, 0.5, 1}, times, 1e-15)
	assert.Equal(t, []float64{1, 1, -1, 1}, values)

	saw := build(t, tendency.TypeSawtooth, map[string]any{"duration": 2})
	times, values = saw.Generate()
	assert.InDeltaSlice(t, []float64{0, 0.5 - env.EdgeEpsilon, 0.5, 1.5 - env.EdgeEpsilon, 1.5, 2}, times, 1e-15)
	assert.InDeltaSlice(t, []float64{0, 1, -1, 1, -1, 0}, values, 1e-6)
	rate, ok := saw.(*tendency.PeriodicTendency).Rate()
	assert.True(t, ok)
	assert.Equal(t, 2.0, rate)

	tri := build(t, tendency.TypeTriangle, map[string]any{"duration": 1})
	times, values = tri.Generate()
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.75, 1}, times, eps)
	assert.InDeltaSlice(t, []float64{0, 1, -1, 0}, values, eps)

	sine := build(t, tendency.TypeSine, map[string]any{"duration": 2})
	times, _ = sine.Generate()
	assert.Len(t, times, 2*env.SinePointsPerPeriod+1)
	assert.Equal(t, 0.0, times[0])
	assert.Equal(t, 2.0, times[len(times)-1])
}

func TestPeriodic_PhaseShiftsSquare(t *testing.T) {
	// Half a cycle of phase starts the square wave low.
	sq := build(t, tendency.TypeSquare, map[string]any{"duration": 1, "phase": math.Pi})
	assert.Equal(t, -1.0, sq.StartValue())
	times, values := sq.Generate()
	assert.InDeltaSlice(t, []float64{0, 0.5 - tendency.DefaultEdgeEpsilon, 0.5, 1}, times, 1e-15)
	assert.Equal(t, []float64{-1, -1, 1, -1}, values)
}

// interpolate evaluates the polyline (times, values) at t.
func interpolate(times, values []float64, t float64) float64 {
	j := sort.SearchFloat64s(times, t)
	switch {
	case j == len(times):
		return values[len(values)-1]
	case times[j] == t || j == 0:
		return values[j]
	}
	w := (t - times[j-1]) / (times[j] - times[j-1])

	return values[j-1] + w*(values[j]-values[j-1])
}

func TestPeriodic_PhaseWrapping(t *testing.T) {
	shapes := []string{tendency.TypeSawtooth, tendency.TypeSquare, tendency.TypeTriangle}
	phases := []float64{0, 0.7, math.Pi / 2, -1, 7, -9.5}
	for _, typ := range shapes {
		for _, phase := range phases {
			p := build(t, typ, map[string]any{
				"start": 2, "duration": 3, "frequency": 1.5,
				"base": 1, "amplitude": 2, "phase": phase,
			})
			require.NoError(t, p.ValueError())

			times, values := p.Generate()
			require.True(t, sort.Float64sAreSorted(times), "%s phase %g", typ, phase)
			assert.Equal(t, 2.0, times[0])
			assert.Equal(t, 5.0, times[len(times)-1])

			const n = 997
			for k := 0; k <= n; k++ {
				tt := 2 + 3*float64(k)/n
				want := p.Values([]float64{tt})[0]
				assert.InDelta(t, want, interpolate(times, values, tt), 1e-6, "%s phase %g t %g", typ, phase, tt)
			}

			// Whole turns of phase do not move the wave.
			q := build(t, typ, map[string]any{
				"start": 2, "duration": 3, "frequency": 1.5,
				"base": 1, "amplitude": 2, "phase": phase + 4*math.Pi,
			})
			qt, _ := q.Generate()
			assert.InDeltaSlice(t, times, qt, 1e-9, "%s phase %g", typ, phase)
		}
	}
}

func TestPeriodic_BreakpointTimes(t *testing.T) {
	const e = tendency.DefaultEdgeEpsilon
	b1, b2, b3 := 2+1.0/6, 2.5, 2+5.0/6
	cases := []struct {
		typ    string
		phase  float64
		times  []float64
		values []float64
	}{
		{
			tendency.TypeSquare, -3 * math.Pi / 2,
			[]float64{2, b1 - e, b1, b2 - e, b2, b3 - e, b3, 3},
			[]float64{1, 1, -1, -1, 1, 1, -1, -1},
		},
		{
			tendency.TypeSawtooth, -3 * math.Pi / 2,
			[]float64{2, b1 - e, b1, b3 - e, b3, 3},
			[]float64{0.5, 1, -1, 1, -1, -0.5},
		},
		{
			tendency.TypeTriangle, -math.Pi,
			[]float64{2, b1, b2, b3, 3},
			[]float64{0, -1, 1, -1, 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			p := build(t, tc.typ, map[string]any{
				"start": 2, "duration": 1, "frequency": 1.5, "phase": tc.phase,
			})
			times, values := p.Generate()
			assert.InDeltaSlice(t, tc.times, times, 1e-12)
			assert.InDeltaSlice(t, tc.values, values, 1e-9)
		})
	}
}

func TestSmooth_MatchesNeighbours(t *testing.T) {
	a := build(t, tendency.TypeLinear, map[string]any{"from": 0, "rate": 1})
	s := build(t, tendency.TypeSmooth, nil)
	c := build(t, tendency.TypeLinear, map[string]any{"start": 2, "from": 5, "rate": 1})
	link(a, s, c)

	assert.InDelta(t, 1.0, s.StartValue(), eps)
	assert.InDelta(t, 5.0, s.EndValue(), eps)
	assert.InDeltaSlice(t, []float64{1, 5}, s.Values([]float64{1, 2}), eps)
	assert.InDeltaSlice(t, []float64{1, 1}, s.Derivatives([]float64{1, 2}), eps)

	times, _ := s.Generate()
	assert.Len(t, times, tendency.DefaultSmoothPoints)
}

func TestSmooth_DefaultsToZero(t *testing.T) {
	s := build(t, tendency.TypeSmooth, map[string]any{"from": 2})
	assert.Equal(t, 0.0, s.EndValue())
	assert.InDelta(t, 1.0, s.Values([]float64{0.5})[0], eps)
}

func TestPiecewise_Validation(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]any
		want   error
	}{
		{"length mismatch", map[string]any{"time": []any{1, 2}, "value": []any{1, 2, 3}}, tendency.ErrLengthMismatch},
		{"not increasing", map[string]any{"time": []any{3, 2, 1}, "value": []any{1, 2, 3}}, tendency.ErrNotIncreasing},
		{"too short", map[string]any{"time": []any{1}, "value": []any{1}}, tendency.ErrTooFewPoints},
		{"missing", map[string]any{"time": []any{1, 2}}, tendency.ErrMissingPoints},
		{"bad element", map[string]any{"time": []any{1, "x"}, "value": []any{1, 2}}, tendency.ErrFieldType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tendency.Build(tendency.Spec{Type: tendency.TypePiecewise, Line: 3, Fields: tc.fields}, tendency.Env{})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPiecewise_Interpolation(t *testing.T) {
	tt := build(t, tendency.TypePiecewise, map[string]any{"time": []float64{1, 2, 4}, "value": []float64{0, 2, 0}})
	assert.Equal(t, 1.0, tt.Start())
	assert.Equal(t, 4.0, tt.End())
	assert.InDeltaSlice(t, []float64{0, 0, 1, 2, 1, 0}, tt.Values([]float64{0, 1, 1.5, 2, 3, 5}), eps)
	assert.InDeltaSlice(t, []float64{0, 2, 2, -1, -1, 0}, tt.Derivatives([]float64{0.5, 1, 1.5, 2, 4, 5}), eps)
	assert.Equal(t, 2.0, tt.StartDerivative())
	assert.Equal(t, -1.0, tt.EndDerivative())
}

// single adapts one tendency to the nested-waveform view.
type single struct{ tendency.Tendency }

func (s single) Length() float64 { return s.Duration() }

func nestEnv() tendency.Env {
	var env tendency.Env
	env.Nest = func(specs []tendency.Spec) (tendency.Sequence, error) {
		tt, err := tendency.Build(specs[0], env)
		if err != nil {
			return nil, err
		}
		return single{tt}, nil
	}

	return env
}

func TestRepeat_Wraps(t *testing.T) {
	spec := tendency.Spec{Type: tendency.TypeRepeat, Line: 1, Fields: map[string]any{
		"duration": 3,
		"waveform": []any{map[string]any{"type": "piecewise", "time": []any{0, 1}, "value": []any{0, 2}}},
	}}
	tt, err := tendency.Build(spec, nestEnv())
	require.NoError(t, err)
	rep := tt.(*tendency.RepeatTendency)

	assert.Equal(t, 1.0, rep.Period())
	assert.InDeltaSlice(t, []float64{1, 1, 0.5}, tt.Values([]float64{0.5, 1.5, 2.25}), eps)
	assert.InDelta(t, 2.0, tt.EndValue(), eps)

	times, values := tt.Generate()
	assert.Equal(t, []float64{0, 1, 1, 2, 2, 3}, times)
	assert.Equal(t, []float64{0, 2, 0, 2, 0, 2}, values)
}

func TestRepeat_Errors(t *testing.T) {
	_, err := tendency.Build(tendency.Spec{Type: tendency.TypeRepeat, Fields: map[string]any{"waveform": []any{}}}, nestEnv())
	assert.ErrorIs(t, err, tendency.ErrEmptyRepeat)

	_, err = tendency.Build(tendency.Spec{Type: tendency.TypeRepeat, Fields: map[string]any{
		"waveform": []any{1.0},
	}}, tendency.Env{})
	assert.ErrorIs(t, err, tendency.ErrUnsupportedType)
}

func TestBuild_Registry(t *testing.T) {
	_, err := tendency.Build(tendency.Spec{Type: "wobble", Line: 9}, tendency.Env{})
	assert.ErrorIs(t, err, tendency.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "line 9")

	assert.Contains(t, tendency.Types(), tendency.TypeSineWave)
	for _, typ := range []string{"sine", "sine-wave"} {
		assert.Equal(t, tendency.KindSine, build(t, typ, nil).Kind())
	}

	tt := build(t, tendency.TypeConstant, map[string]any{"value": 1, "colour": "red", "wobble": 2})
	assert.Equal(t, []string{"colour", "wobble"}, tt.UnknownFields())

	_, err = tendency.Build(tendency.Spec{Type: tendency.TypeLinear, Fields: map[string]any{"from": "zero"}}, tendency.Env{})
	assert.ErrorIs(t, err, tendency.ErrFieldType)
}

func TestFromRaw(t *testing.T) {
	s, err := tendency.FromRaw(3, 4)
	require.NoError(t, err)
	assert.Equal(t, tendency.ConstantSpec(3, 4), s)

	s, err = tendency.FromRaw(map[string]any{"type": "linear", "to": 2}, 5)
	require.NoError(t, err)
	assert.Equal(t, "linear", s.Type)
	assert.Equal(t, map[string]any{"to": 2}, s.Fields)

	_, err = tendency.FromRaw(map[string]any{"to": 2}, 5)
	assert.ErrorIs(t, err, tendency.ErrMissingType)

	_, err = tendency.FromRaw("linear", 5)
	assert.ErrorIs(t, err, tendency.ErrFieldType)
}
