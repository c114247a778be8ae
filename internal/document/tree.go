package document

import "sort"

// LineTree holds ordered logical line snapshots and resolves rows and
// absolute positions to lines. It is rebuilt with Reindex after the
// buffer changes; the engine only ever reads from it.
type LineTree struct {
	lines []Line
}

// NewLineTree indexes the buffer's lines.
func NewLineTree(b *Buffer) *LineTree {
	t := &LineTree{}
	t.Reindex(b)
	return t
}

// Reindex rebuilds the line snapshots from the buffer contents.
// A document always has at least one line; a trailing terminator
// produces a final empty line.
func (t *LineTree) Reindex(b *Buffer) {
	text := b.String()
	lines := make([]Line, 0, 16)

	startRune := 0
	startByte := 0
	runeIdx := 0
	for byteIdx, r := range text {
		if r == '\n' {
			length := runeIdx - startRune
			lines = append(lines, Line{
				Index:       len(lines),
				Location:    startRune,
				Length:      length,
				TotalLength: length + 1,
				ByteStart:   startByte,
				ByteEnd:     byteIdx,
			})
			startRune = runeIdx + 1
			startByte = byteIdx + 1
		}
		runeIdx++
	}

	length := runeIdx - startRune
	lines = append(lines, Line{
		Index:       len(lines),
		Location:    startRune,
		Length:      length,
		TotalLength: length,
		ByteStart:   startByte,
		ByteEnd:     len(text),
	})

	t.lines = lines
}

// LineCount returns the number of logical lines.
func (t *LineTree) LineCount() int {
	return len(t.lines)
}

// LineAt returns the line at the given 0-based row.
func (t *LineTree) LineAt(row int) (Line, bool) {
	if row < 0 || row >= len(t.lines) {
		return Line{}, false
	}
	return t.lines[row], true
}

// LineContaining returns the line containing the absolute character
// offset. The terminator belongs to its line; the end-of-document
// position resolves to the last line.
func (t *LineTree) LineContaining(pos int) (Line, bool) {
	if len(t.lines) == 0 || pos < 0 {
		return Line{}, false
	}
	last := t.lines[len(t.lines)-1]
	if pos > last.TotalEnd() {
		return Line{}, false
	}
	if pos >= last.Location {
		return last, true
	}

	// First line starting after pos; the one before it contains pos.
	i := sort.Search(len(t.lines), func(i int) bool {
		return t.lines[i].Location > pos
	})
	return t.lines[i-1], true
}

// LastLine returns the final line of the document.
func (t *LineTree) LastLine() (Line, bool) {
	if len(t.lines) == 0 {
		return Line{}, false
	}
	return t.lines[len(t.lines)-1], true
}

// DocumentEnd returns the absolute offset just past the last line.
func (t *LineTree) DocumentEnd() int {
	if len(t.lines) == 0 {
		return 0
	}
	return t.lines[len(t.lines)-1].TotalEnd()
}
