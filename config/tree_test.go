package config_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavechain/config"
	"github.com/katalvlaran/wavechain/depgraph"
	"github.com/katalvlaran/wavechain/derived"
	"github.com/katalvlaran/wavechain/tendency"
	"github.com/katalvlaran/wavechain/waveform"
)

func ramp(t *testing.T, name string, from, to float64) *waveform.Waveform {
	t.Helper()
	w, err := waveform.New(name, []tendency.Spec{{
		Type: tendency.TypeLinear, Line: 1,
		Fields: map[string]any{"from": from, "to": to, "duration": 2},
	}})
	require.NoError(t, err)

	return w
}

func TestTree_Groups(t *testing.T) {
	tree := config.New()
	core, err := tree.AddGroup(nil, "core")
	require.NoError(t, err)
	prof, err := tree.AddGroup(core, "profiles")
	require.NoError(t, err)
	assert.Equal(t, "core/profiles", prof.Path())
	assert.Same(t, core, prof.Parent())

	got, err := tree.Group("core/profiles")
	require.NoError(t, err)
	assert.Same(t, prof, got)

	root, err := tree.Group("")
	require.NoError(t, err)
	assert.Same(t, tree.Root(), root)

	_, err = tree.Group("core/missing")
	assert.ErrorIs(t, err, config.ErrUnknownGroup)

	_, err = tree.AddGroup(core, "profiles")
	assert.ErrorIs(t, err, config.ErrDuplicateGroup)
	_, err = tree.AddGroup(nil, "")
	assert.ErrorIs(t, err, config.ErrEmptyGroupName)
	_, err = tree.AddGroup(nil, "a/b")
	assert.ErrorIs(t, err, config.ErrInvalidGroupName)

	// The same name under another parent is fine.
	_, err = tree.AddGroup(nil, "profiles")
	assert.NoError(t, err)
}

func TestTree_Names(t *testing.T) {
	tree := config.New()
	g, err := tree.AddGroup(nil, "core")
	require.NoError(t, err)

	require.NoError(t, tree.AddWaveform(g, ramp(t, "core/te", 0, 2)))
	assert.ErrorIs(t, tree.AddWaveform(g, ramp(t, "core/te", 0, 1)), config.ErrDuplicateWaveform)
	assert.ErrorIs(t, tree.AddWaveform(g, ramp(t, "te", 0, 1)), config.ErrNameWithoutSlash)
	assert.ErrorIs(t, tree.AddDerived(g, "core/te", "1", 3), config.ErrDuplicateWaveform)
	assert.ErrorIs(t, tree.AddDerived(nil, "double", "1", 3), config.ErrNameWithoutSlash)
	assert.ErrorIs(t, tree.AddWaveform(g, nil), config.ErrNilWaveform)

	require.NoError(t, tree.AddDerived(nil, "out/double", "core/te * 2", 4))
	assert.Equal(t, []string{"core/te", "out/double"}, tree.Names())
	assert.Equal(t, []string{"core/te"}, g.Waveforms())

	e, err := tree.Lookup("out/double")
	require.NoError(t, err)
	assert.True(t, e.Derived())
	assert.Equal(t, 4, e.Line)
	assert.Same(t, tree.Root(), e.Group)

	_, err = tree.Lookup("out/none")
	assert.ErrorIs(t, err, config.ErrUnknownWaveform)
}

func TestTree_ResolveAndEvaluate(t *testing.T) {
	tree := config.New()
	require.NoError(t, tree.AddWaveform(nil, ramp(t, "core/te", 0, 2)))
	require.NoError(t, tree.AddWaveform(nil, ramp(t, "core/ne", 10, 10)))
	require.NoError(t, tree.AddDerived(nil, "out/sum", "core/te + core/ne", 1))
	require.NoError(t, tree.AddDerived(nil, "out/half", "out/sum/2", 2))

	_, err := tree.Values("out/sum", []float64{0})
	assert.ErrorIs(t, err, config.ErrUnresolved)
	assert.False(t, tree.Resolved())

	require.NoError(t, tree.Resolve())
	assert.True(t, tree.Resolved())

	v, err := tree.Values("out/half", []float64{0, 1, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5, 5.5, 6}, v, 1e-12)

	d, err := tree.Derivatives("out/half", []float64{0.5, 1.5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, d, 1e-6)

	d, err = tree.Derivatives("core/te", []float64{1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, d)

	times, err := tree.Times("out/half")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, times)

	g, err := tree.Graph()
	require.NoError(t, err)
	assert.Equal(t, []string{"core/te", "core/ne", "out/sum", "out/half"}, g.Order())

	// A mutation invalidates the previous resolve.
	require.NoError(t, tree.AddDerived(nil, "out/neg", "-core/te", 3))
	_, err = tree.Values("out/half", []float64{0})
	assert.ErrorIs(t, err, config.ErrUnresolved)
}

func TestTree_ResolveErrors(t *testing.T) {
	tree := config.New()
	require.NoError(t, tree.AddDerived(nil, "w/a", "w/b + 1", 1))
	require.NoError(t, tree.AddDerived(nil, "w/b", "w/a * 2", 2))
	err := tree.Resolve()
	assert.ErrorIs(t, err, depgraph.ErrCycleDetected)
	assert.False(t, tree.Resolved())

	tree = config.New()
	require.NoError(t, tree.AddDerived(nil, "w/a", "w/a + 1", 7))
	err = tree.Resolve()
	assert.ErrorIs(t, err, derived.ErrSelfReference)
	assert.Contains(t, err.Error(), "line 7")

	tree = config.New()
	require.NoError(t, tree.AddDerived(nil, "w/a", "w/zz", 1))
	assert.ErrorIs(t, tree.Resolve(), derived.ErrMissingReference)
}

func TestTree_ConcurrentReads(t *testing.T) {
	tree := config.New()
	require.NoError(t, tree.AddWaveform(nil, ramp(t, "core/te", 0, 2)))
	require.NoError(t, tree.AddDerived(nil, "out/x", "core/te * core/te", 1))
	require.NoError(t, tree.Resolve())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := tree.Values("out/x", []float64{1, 2})
			assert.NoError(t, err)
			assert.InDeltaSlice(t, []float64{1, 4}, v, 1e-12)
		}()
	}
	wg.Wait()
}

func TestTree_GroupsDuringBuild(t *testing.T) {
	tree := config.New()
	const n = 50

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			g, err := tree.AddGroup(nil, fmt.Sprintf("g%d", i))
			assert.NoError(t, err)
			assert.NoError(t, tree.AddDerived(g, fmt.Sprintf("g%d/w", i), "1", i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for _, g := range tree.Root().Groups() {
				assert.LessOrEqual(t, len(g.Waveforms()), 1)
			}
		}
	}()
	wg.Wait()

	assert.Len(t, tree.Root().Groups(), n)
}
