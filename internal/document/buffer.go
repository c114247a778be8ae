package document

import (
	"github.com/rivo/uniseg"
)

// Buffer holds the full document text and answers length and
// grapheme-cluster boundary queries in character (rune) offsets.
type Buffer struct {
	text  string
	runes []rune
}

// NewBuffer creates a buffer over text.
func NewBuffer(text string) *Buffer {
	return &Buffer{
		text:  text,
		runes: []rune(text),
	}
}

// Len returns the document length in characters.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// String returns the full document text.
func (b *Buffer) String() string {
	return b.text
}

// SetText replaces the buffer contents. Callers are responsible for
// reindexing any line tree built over the previous contents.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.runes = []rune(text)
}

// Slice returns the text between two character offsets. Offsets are
// clamped to the valid range.
func (b *Buffer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.runes) {
		end = len(b.runes)
	}
	if end <= start {
		return ""
	}
	return string(b.runes[start:end])
}

// LineText returns the visible content of a line, excluding the
// terminator.
func (b *Buffer) LineText(l Line) string {
	return b.Slice(l.Location, l.End())
}

// ClusterRange returns the extended grapheme cluster containing the
// character offset pos as a half-open range [start, end). A pos at or
// past the end of the document returns the empty range [len, len);
// negative pos returns [0, 0).
func (b *Buffer) ClusterRange(pos int) (start, end int) {
	if pos < 0 {
		return 0, 0
	}
	if pos >= len(b.runes) {
		return len(b.runes), len(b.runes)
	}

	g := uniseg.NewGraphemes(b.text)
	off := 0
	for g.Next() {
		n := len(g.Runes())
		if pos < off+n {
			return off, off + n
		}
		off += n
	}
	return off, off
}

// IsClusterBoundary reports whether pos sits on a grapheme cluster
// boundary (including both document edges).
func (b *Buffer) IsClusterBoundary(pos int) bool {
	if pos <= 0 || pos >= len(b.runes) {
		return true
	}
	start, _ := b.ClusterRange(pos)
	return start == pos
}
