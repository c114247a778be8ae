package document

import "fmt"

// Line is an immutable snapshot of one logical line, delimited by a
// line terminator or the end of the document. It is valid for the
// duration of one operation; edits invalidate it.
type Line struct {
	// Index is the 0-based row of the line.
	Index int

	// Location is the absolute character offset of the line start.
	Location int

	// Length is the number of visible characters, excluding the
	// terminator.
	Length int

	// TotalLength includes the terminator, when present. The last
	// line of a document has TotalLength == Length.
	TotalLength int

	// ByteStart and ByteEnd delimit the line's visible content in
	// byte offsets, for collaborators that consume encoded text.
	ByteStart int
	ByteEnd   int
}

// End returns the absolute offset just past the visible content.
func (l Line) End() int {
	return l.Location + l.Length
}

// TotalEnd returns the absolute offset just past the terminator.
func (l Line) TotalEnd() int {
	return l.Location + l.TotalLength
}

// Contains reports whether the absolute position falls within the
// line, terminator included.
func (l Line) Contains(pos int) bool {
	return pos >= l.Location && pos < l.TotalEnd()
}

// HasTerminator reports whether the line ends with a terminator.
func (l Line) HasTerminator() bool {
	return l.TotalLength > l.Length
}

// String returns a human-readable representation of the line.
func (l Line) String() string {
	return fmt.Sprintf("Line(%d @%d len=%d total=%d)", l.Index, l.Location, l.Length, l.TotalLength)
}
