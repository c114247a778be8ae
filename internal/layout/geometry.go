package layout

import (
	"github.com/emoor/caretline/internal/core"
	"github.com/emoor/caretline/internal/document"
)

// LineLayout is the computed layout of one logical line: its wrapped
// fragments and the mapping between line-local character offsets and
// cell positions. Geometry queries are pure reads.
type LineLayout struct {
	Line      document.Line
	Fragments []Fragment

	metrics Metrics
	fragOf  []int // fragment index per local offset, length Line.Length+1
	colOf   []int // cell column within the fragment per local offset
	widths  []int // cell width per fragment
}

// Length returns the line length in characters.
func (ll *LineLayout) Length() int {
	return len(ll.fragOf) - 1
}

// FragmentContaining returns the fragment containing the line-local
// offset. Offsets are clamped into the line.
func (ll *LineLayout) FragmentContaining(local int) Fragment {
	return ll.Fragments[ll.fragOf[ll.clampOffset(local)]]
}

// FragmentAt returns the fragment at index, clamped to the valid
// range.
func (ll *LineLayout) FragmentAt(index int) Fragment {
	if index < 0 {
		index = 0
	}
	if index >= len(ll.Fragments) {
		index = len(ll.Fragments) - 1
	}
	return ll.Fragments[index]
}

// CaretRect returns the caret rectangle for a line-local offset: one
// cell wide at the offset's cell position.
func (ll *LineLayout) CaretRect(local int) core.Rect {
	local = ll.clampOffset(local)
	m := ll.metrics
	return core.Rect{
		X: ll.colOf[local] * m.CellWidth,
		Y: ll.fragOf[local] * m.LineHeight,
		W: m.CellWidth,
		H: m.LineHeight,
	}
}

// SelectionRects returns one rectangle per fragment touched by the
// line-local range [start, end).
func (ll *LineLayout) SelectionRects(start, end int) []core.Rect {
	start = ll.clampOffset(start)
	end = ll.clampOffset(end)
	if end <= start {
		return nil
	}

	m := ll.metrics
	var rects []core.Rect
	for _, f := range ll.Fragments {
		if f.End() <= start || f.Location >= end {
			continue
		}
		from := max(start, f.Location)
		to := min(end, f.End())

		startCol := ll.colOf[from]
		endCol := ll.widths[f.Index]
		if to < f.End() {
			endCol = ll.colOf[to]
		}
		if endCol <= startCol {
			// Zero-width slice of a fragment boundary; still emit a
			// minimal rectangle so callers can draw wrap continuations.
			endCol = startCol + 1
		}
		rects = append(rects, core.Rect{
			X: startCol * m.CellWidth,
			Y: f.Index * m.LineHeight,
			W: (endCol - startCol) * m.CellWidth,
			H: m.LineHeight,
		})
	}
	return rects
}

// FirstRect returns the rectangle of the first fragment portion of
// the range [start, end), or the caret rectangle at start for an
// empty range.
func (ll *LineLayout) FirstRect(start, end int) core.Rect {
	rects := ll.SelectionRects(start, end)
	if len(rects) == 0 {
		return ll.CaretRect(start)
	}
	return rects[0]
}

// ClosestOffset returns the line-local offset closest to a point in
// cell space. Points outside the layout clamp to the nearest fragment
// edge.
func (ll *LineLayout) ClosestOffset(pt core.Point) int {
	m := ll.metrics
	row := pt.Y / m.LineHeight
	if row < 0 {
		row = 0
	}
	if row >= len(ll.Fragments) {
		row = len(ll.Fragments) - 1
	}
	f := ll.Fragments[row]

	col := pt.X / m.CellWidth
	if col < 0 {
		return f.Location
	}
	if col >= ll.widths[row] {
		return ll.fragmentCaretEnd(f)
	}

	// Find the last offset in the fragment whose cell column does not
	// exceed col. Offsets inside a cluster share the cluster's column.
	best := f.Location
	for off := f.Location; off < f.End(); off++ {
		if ll.colOf[off] <= col {
			best = off
		} else {
			break
		}
	}
	return best
}

// Size returns the layout extent in cells: the widest fragment by the
// total fragment height.
func (ll *LineLayout) Size() (w, h int) {
	m := ll.metrics
	maxW := 0
	for _, fw := range ll.widths {
		if fw > maxW {
			maxW = fw
		}
	}
	return maxW * m.CellWidth, len(ll.Fragments) * m.LineHeight
}

// fragmentCaretEnd returns the offset a caret lands on at the visual
// end of a fragment: past the content for the last fragment, on the
// last character column otherwise.
func (ll *LineLayout) fragmentCaretEnd(f Fragment) int {
	if f.Index == len(ll.Fragments)-1 {
		return f.End()
	}
	if f.Length == 0 {
		return f.Location
	}
	return f.End() - 1
}

func (ll *LineLayout) clampOffset(local int) int {
	if local < 0 {
		return 0
	}
	if local > ll.Length() {
		return ll.Length()
	}
	return local
}
