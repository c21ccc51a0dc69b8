// Package config holds the configuration tree of a waveform document: named
// groups that own waveforms and derived waveforms.
//
// Every waveform name must contain at least one '/' (it is a path, for
// example core_profiles/electrons/temperature). Names are unique across the
// whole tree; groups are unique among their siblings.
//
// Derived waveforms are stored as source text until Resolve compiles them and
// builds the dependency graph. Any mutation invalidates a previous Resolve.
// A Tree is safe for concurrent use: readers share a read lock and mutations
// are serialised.
package config
