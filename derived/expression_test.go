package derived_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavechain/derived"
)

var samples = map[string][]float64{
	"core/te":          {1, 2, 3},
	"core/ne":          {10, 20, 30},
	"edge/a/b":         {4, 4, 4},
	"edge/a":           {-1, -1, -1},
	"heating/p_ec":     {0, 0.5, 1},
	"ec/beam(1)/power": {2, 4, 6},
}

func known(ref string) bool {
	_, ok := samples[ref]
	return ok
}

func lookup(ref string) ([]float64, error) {
	v, ok := samples[ref]
	if !ok {
		return nil, errors.New("no samples")
	}

	return v, nil
}

func TestCompileEval(t *testing.T) {
	cases := []struct {
		src  string
		refs []string
		want []float64
	}{
		{"core/te + core/ne", []string{"core/te", "core/ne"}, []float64{11, 22, 33}},
		{"core/te*core/ne - 5", []string{"core/te", "core/ne"}, []float64{5, 35, 85}},
		{"(core/te + 1) * 2", []string{"core/te"}, []float64{4, 6, 8}},
		{"-core/te", []string{"core/te"}, []float64{-1, -2, -3}},
		{"core/ne/2", []string{"core/ne"}, []float64{5, 10, 15}},
		{"edge/a/b", []string{"edge/a/b"}, []float64{4, 4, 4}},
		{"edge/a / 4 + core/te", []string{"edge/a", "core/te"}, []float64{0.75, 1.75, 2.75}},
		{"heating/p_ec * 1e2 + core/te * core/te", []string{"heating/p_ec", "core/te"}, []float64{1, 54, 109}},
		{"2.5", []string{}, []float64{2.5, 2.5, 2.5}},
		{"'ec/beam(1)/power' * 2", []string{"ec/beam(1)/power"}, []float64{4, 8, 12}},
		{"`ec/beam(1)/power`/core/te", []string{"ec/beam(1)/power", "core/te"}, []float64{2, 2, 2}},
		{"'core/te' + core/te", []string{"core/te"}, []float64{2, 4, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			e, err := derived.Compile("out/x", tc.src, known)
			require.NoError(t, err)
			assert.Equal(t, tc.refs, e.References())

			got, err := e.Eval(3, lookup)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.want, got, 1e-12)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"self", "core/te + out/x", derived.ErrSelfReference},
		{"self with division", "out/x/2", derived.ErrSelfReference},
		{"missing", "core/te + core/ti", derived.ErrMissingReference},
		{"bare identifier", "pi * core/te", derived.ErrMissingReference},
		{"power", "core/te ** 2", derived.ErrUnsupportedSyntax},
		{"modulo", "core/te % 2", derived.ErrUnsupportedSyntax},
		{"call", "core/te + len(3)", derived.ErrMissingReference},
		{"string", `core/te + "1"`, derived.ErrUnsupportedSyntax},
		{"comparison", "core/te > 1", derived.ErrUnsupportedSyntax},
		{"dangling", "core/te +", derived.ErrUnsupportedSyntax},
		{"empty", "  ", derived.ErrEmptyExpression},
		{"unquoted bracket name", "ec/beam(1)/power * 2", derived.ErrMissingReference},
		{"quoted missing", "'ec/beam(2)/power'", derived.ErrMissingReference},
		{"quoted prefix only", "'core/te/2'", derived.ErrMissingReference},
		{"quoted self", "`out/x` + 1", derived.ErrSelfReference},
		{"unterminated quote", "'ec/beam(1)/power * 2", derived.ErrUnsupportedSyntax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := derived.Compile("out/x", tc.src, known)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEval_Lookup(t *testing.T) {
	e, err := derived.Compile("out/x", "core/te / core/ne", known)
	require.NoError(t, err)

	_, err = e.Eval(2, lookup)
	assert.ErrorIs(t, err, derived.ErrLengthMismatch)

	boom := errors.New("boom")
	_, err = e.Eval(3, func(string) ([]float64, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	zero, err := derived.Compile("out/x", "core/te / 0", known)
	require.NoError(t, err)
	got, err := zero.Eval(3, lookup)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got[0], 1))
}

func TestEval_DoesNotAliasInputs(t *testing.T) {
	e, err := derived.Compile("out/x", "core/te", known)
	require.NoError(t, err)
	got, err := e.Eval(3, lookup)
	require.NoError(t, err)
	got[0] = 99
	assert.Equal(t, 1.0, samples["core/te"][0])
}
