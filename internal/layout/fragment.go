// Package layout computes wrapped-line layout for logical lines: it
// splits a line into visual fragments at a configured cell width,
// maps character offsets to cell positions, and answers the geometry
// queries (caret rectangle, selection rectangles, hit testing) the
// render layer exposes.
package layout

import (
	"github.com/emoor/caretline/internal/document"
)

// Fragment is one visually wrapped sub-line of a logical line.
// Location and Length are character offsets relative to the line
// start. Fragments are recomputed whenever layout is invalidated and
// must not be held across an invalidation.
type Fragment struct {
	// Index is the 0-based position within the line.
	Index int

	// Location is the character offset of the fragment start,
	// relative to the line start.
	Location int

	// Length is the fragment length in characters.
	Length int
}

// End returns the line-local offset just past the fragment.
func (f Fragment) End() int {
	return f.Location + f.Length
}

// FragmentProvider reports the wrapped fragments of a logical line.
// The movement resolver consumes exactly this contract.
type FragmentProvider interface {
	// FragmentCount returns how many fragments the line has. Every
	// line has at least one, even when empty.
	FragmentCount(line document.Line) int

	// FragmentContaining returns the fragment containing the
	// line-local character offset. Offsets past the last fragment
	// resolve to the last fragment.
	FragmentContaining(line document.Line, local int) Fragment

	// FragmentAt returns the fragment at the given index, clamped to
	// the valid range.
	FragmentAt(line document.Line, index int) Fragment
}

// Metrics describes the active font in cell units: the width of one
// character cell and the height of one visual row.
type Metrics struct {
	CellWidth  int
	LineHeight int
}

// DefaultMetrics returns 1x1 cell metrics, the terminal case.
func DefaultMetrics() Metrics {
	return Metrics{CellWidth: 1, LineHeight: 1}
}

func (m Metrics) normalized() Metrics {
	if m.CellWidth < 1 {
		m.CellWidth = 1
	}
	if m.LineHeight < 1 {
		m.LineHeight = 1
	}
	return m
}
