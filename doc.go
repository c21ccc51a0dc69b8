// Package wavechain is a toolkit for editing and rendering piecewise
// time-series signals ("waveforms") whose segments infer what you leave out.
//
// 🚀 What is wavechain?
//
//	A waveform is a chain of tendencies: linear ramps, constants, smooth
//	Hermite joins, sine/sawtooth/square/triangle waves, piecewise-linear
//	tables and repeats of a nested waveform. Any of a tendency's start,
//	duration, end, start value, end value or slope may be omitted; it is
//	solved from the tendency's own constraints and from its neighbours.
//
// ✨ Packages
//
//	solver/     - small linear systems over a subset of known variables
//	annotation/ - line-tagged error and warning records
//	tendency/   - the tendency variants, their registry and the linking protocol
//	waveform/   - ordered chains, gap/overlap handling and evaluation
//	derived/    - restricted arithmetic over waveform references
//	depgraph/   - dependency ordering and cycle detection for derived waveforms
//	config/     - the group/waveform tree of a document
//	loader/     - YAML documents into a resolved tree
//	settings/   - persisted sampling, tolerance and logging settings
//	cmd/wavechain - check, sample, graph and watch from the command line
//
// Quick start:
//
//	doc, err := loader.LoadFile("scenario.yaml")
//	if err != nil { ... }
//	for _, a := range doc.Annotations.Items() {
//		fmt.Println(a)
//	}
//	values, err := doc.Tree.Values("core/ip", []float64{0, 1, 2})
//
// See examples/ for complete programs.
package wavechain
