// Package derived compiles the arithmetic expressions that define derived
// waveforms.
//
// The grammar is deliberately small: numeric literals, waveform references,
// the binary operators + - * /, unary + and -, and parentheses. References
// are slash-delimited names such as core/temperature. Because '/' is also the
// division operator, a reference is the longest prefix of a path token that
// ends on a '/' boundary and names a known waveform; whatever follows is
// parsed as ordinary arithmetic, so "core/t/2" halves core/t. A name with
// characters outside letters, digits, '_', '.' and '/' is written quoted,
// 'ec/beam(1)/power' or `ec/beam(1)/power`, and must match a waveform exactly.
//
// Parsing is delegated to expr-lang's parser after references have been
// replaced by plain identifiers; every node outside the grammar is rejected.
// Nothing is ever executed by a general-purpose evaluator: Eval walks the
// checked tree and combines equal-length sample vectors elementwise.
package derived
