// Package movement resolves directional caret movement into absolute
// character positions. Horizontal movement walks character offsets and
// snaps to grapheme-cluster boundaries so the caret never rests inside
// a combining sequence; vertical movement walks wrapped line fragments
// with a sticky column, crossing logical-line boundaries and
// saturating at the document edges.
package movement

import (
	"github.com/emoor/caretline/internal/document"
	"github.com/emoor/caretline/internal/layout"
)

// Direction is a caret movement direction.
type Direction uint8

const (
	// Left moves toward the document start by characters.
	Left Direction = iota

	// Right moves toward the document end by characters.
	Right

	// Up moves toward the document start by wrapped fragments.
	Up

	// Down moves toward the document end by wrapped fragments.
	Down
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// TextBuffer is the slice of the character buffer the resolver needs.
type TextBuffer interface {
	// Len returns the document length in characters.
	Len() int

	// ClusterRange returns the bounds of the extended grapheme
	// cluster containing the offset.
	ClusterRange(pos int) (start, end int)
}

// LineIndex is the slice of the line tree the resolver needs.
type LineIndex interface {
	LineCount() int
	LineAt(row int) (document.Line, bool)
	LineContaining(pos int) (document.Line, bool)
}

// Resolver computes movement destinations. It is a pure reader: it
// never mutates the buffer, the line index or the fragment provider,
// and is safe to call from any context that holds them consistent.
type Resolver struct {
	buf   TextBuffer
	lines LineIndex
	frags layout.FragmentProvider
}

// NewResolver creates a resolver over the given collaborators. Any
// nil collaborator is a programmer error.
func NewResolver(buf TextBuffer, lines LineIndex, frags layout.FragmentProvider) *Resolver {
	if buf == nil || lines == nil || frags == nil {
		panic("movement: resolver requires buffer, line index and fragment provider")
	}
	return &Resolver{buf: buf, lines: lines, frags: frags}
}

// Resolve computes the destination of moving count steps in the given
// direction from an absolute position. Horizontal steps are
// characters, vertical steps are wrapped fragments. Movement clamps at
// the document edges rather than failing; ok is false only when from
// or count is invalid or no line contains the position, and the caller
// then keeps its current position.
func (r *Resolver) Resolve(from int, dir Direction, count int) (int, bool) {
	if from < 0 || from > r.buf.Len() || count < 0 {
		return 0, false
	}
	switch dir {
	case Left:
		return r.horizontal(from, -count), true
	case Right:
		return r.horizontal(from, count), true
	case Up:
		return r.vertical(from, true, count)
	case Down:
		return r.vertical(from, false, count)
	default:
		return 0, false
	}
}

// horizontal walks the offset one character at a time. A step landing
// strictly inside a grapheme cluster snaps to the cluster boundary in
// the direction of travel. At a buffer edge further steps are no-ops.
func (r *Resolver) horizontal(from, delta int) int {
	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	pos := from
	for i := 0; i < delta; i++ {
		next := pos + step
		if next < 0 {
			next = 0
		}
		if max := r.buf.Len(); next > max {
			next = max
		}
		if next == pos {
			break
		}
		start, end := r.buf.ClusterRange(next)
		if next > start && next < end {
			if step > 0 {
				next = end
			} else {
				next = start
			}
		}
		pos = next
	}
	return pos
}

// vertical walks count fragments up or down from the position,
// carrying the fragment-local column across every crossing. Running
// out of lines saturates at position 0 or at the document end.
func (r *Resolver) vertical(from int, up bool, count int) (int, bool) {
	line, ok := r.lines.LineContaining(from)
	if !ok {
		return 0, false
	}

	local := from - line.Location
	if line.TotalLength == 0 {
		local = 0
	} else if local > line.TotalLength-1 {
		local = line.TotalLength - 1
	}

	frag := r.frags.FragmentContaining(line, local)
	sticky := local - frag.Location
	idx := frag.Index

	remaining := count
	for remaining > 0 {
		if up {
			if idx >= remaining {
				idx -= remaining
				break
			}
			remaining -= idx + 1
			prev, ok := r.lines.LineAt(line.Index - 1)
			if !ok {
				return 0, true
			}
			line = prev
			idx = r.frags.FragmentCount(line) - 1
		} else {
			below := r.frags.FragmentCount(line) - 1 - idx
			if below >= remaining {
				idx += remaining
				break
			}
			remaining -= below + 1
			next, ok := r.lines.LineAt(line.Index + 1)
			if !ok {
				return line.Location + line.TotalLength, true
			}
			line = next
			idx = 0
		}
	}

	// A count of zero lands here directly: the same fragment is
	// re-resolved with the preserved column, normalizing the position.
	frag = r.frags.FragmentAt(line, idx)
	pos := line.Location + frag.Location + sticky
	if max := line.Location + line.Length; pos > max {
		pos = max
	}
	return pos, true
}
