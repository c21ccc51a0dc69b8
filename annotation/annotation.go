// Package annotation collects line-tagged error and warning records produced
// while a waveform document is parsed and its tendencies are resolved.
//
// A Set is append-only during one parse pass; callers Clear it (or build a new
// one) before the next pass. Records keep insertion order.
package annotation

import (
	"fmt"
	"strings"
)

// Type is the severity of an annotation: exactly "error" or "warning".
type Type string

const (
	TypeError   Type = "error"
	TypeWarning Type = "warning"
)

// Annotation is a single record consumed by an editor or diagnostics layer.
type Annotation struct {
	Row    int    `json:"row" yaml:"row"`
	Column int    `json:"column" yaml:"column"`
	Text   string `json:"text" yaml:"text"`
	Type   Type   `json:"type" yaml:"type"`
}

// String renders "row:column: type: text".
func (a Annotation) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", a.Row, a.Column, a.Type, a.Text)
}

// Set is an ordered collection of annotations. The zero value is ready to use.
type Set struct {
	items []Annotation
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// Add appends a record at (row, 0).
func (s *Set) Add(row int, text string, typ Type) {
	s.items = append(s.items, Annotation{Row: row, Text: text, Type: typ})
}

// AddError appends an error record at row.
func (s *Set) AddError(row int, format string, args ...interface{}) {
	s.Add(row, fmt.Sprintf(format, args...), TypeError)
}

// AddWarning appends a warning record at row.
func (s *Set) AddWarning(row int, format string, args ...interface{}) {
	s.Add(row, fmt.Sprintf(format, args...), TypeWarning)
}

// Merge appends every record of other, preserving order. A nil other is a no-op.
func (s *Set) Merge(other *Set) {
	if other == nil || other == s {
		return
	}
	s.items = append(s.items, other.items...)
}

// Items returns a copy of the records in insertion order.
func (s *Set) Items() []Annotation {
	out := make([]Annotation, len(s.items))
	copy(out, s.items)

	return out
}

// Len reports the number of records.
func (s *Set) Len() int {
	return len(s.items)
}

// Errors returns only the error records.
func (s *Set) Errors() []Annotation {
	return s.filter(TypeError)
}

// Warnings returns only the warning records.
func (s *Set) Warnings() []Annotation {
	return s.filter(TypeWarning)
}

// HasErrors reports whether any error record is present.
func (s *Set) HasErrors() bool {
	for _, a := range s.items {
		if a.Type == TypeError {
			return true
		}
	}

	return false
}

// Clear drops all records.
func (s *Set) Clear() {
	s.items = s.items[:0]
}

// String joins all records, one per line.
func (s *Set) String() string {
	var b strings.Builder
	for i, a := range s.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(a.String())
	}

	return b.String()
}

func (s *Set) filter(typ Type) []Annotation {
	var out []Annotation
	for _, a := range s.items {
		if a.Type == typ {
			out = append(out, a)
		}
	}

	return out
}
