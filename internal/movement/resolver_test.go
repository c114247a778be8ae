package movement

import (
	"strings"
	"testing"

	"github.com/emoor/caretline/internal/document"
	"github.com/emoor/caretline/internal/layout"
)

// newFixture builds a resolver over a real buffer, line tree and
// typesetter. wrap of 0 disables wrapping.
func newFixture(t *testing.T, text string, wrap int) *Resolver {
	t.Helper()
	buf := document.NewBuffer(text)
	tree := document.NewLineTree(buf)
	ts := layout.NewTypesetter(buf, layout.Options{
		TabWidth:  4,
		WrapWidth: wrap,
	})
	return NewResolver(buf, tree, ts)
}

func TestResolveRight(t *testing.T) {
	r := newFixture(t, strings.Repeat("x", 50), 0)

	got, ok := r.Resolve(0, Right, 5)
	if !ok || got != 5 {
		t.Errorf("Resolve(0, Right, 5) = (%d,%v), want (5,true)", got, ok)
	}
}

func TestResolveHorizontalClamps(t *testing.T) {
	r := newFixture(t, "hello", 0)

	if got, ok := r.Resolve(0, Left, 3); !ok || got != 0 {
		t.Errorf("left at start = (%d,%v), want (0,true)", got, ok)
	}
	if got, ok := r.Resolve(4, Right, 10); !ok || got != 5 {
		t.Errorf("right past end = (%d,%v), want (5,true)", got, ok)
	}
	if got, ok := r.Resolve(5, Right, 1); !ok || got != 5 {
		t.Errorf("right at end = (%d,%v), want (5,true)", got, ok)
	}
}

func TestResolveSnapsClusterBoundaries(t *testing.T) {
	// a, e + combining acute (one cluster spanning runes 1-2), b.
	r := newFixture(t, "aéb", 0)

	if got, ok := r.Resolve(1, Right, 1); !ok || got != 3 {
		t.Errorf("right into cluster = (%d,%v), want snap to (3,true)", got, ok)
	}
	if got, ok := r.Resolve(3, Left, 1); !ok || got != 1 {
		t.Errorf("left into cluster = (%d,%v), want snap to (1,true)", got, ok)
	}
}

func TestResolveNeverRestsInsideCluster(t *testing.T) {
	// Clusters: a [0,1), e+acute [1,3), o+diaeresis [3,5), b [5,6).
	text := "aéöb"
	r := newFixture(t, text, 0)

	inside := map[int]bool{2: true, 4: true}
	for from := 0; from <= 6; from++ {
		if inside[from] {
			continue
		}
		for _, dir := range []Direction{Left, Right} {
			for count := 0; count <= 6; count++ {
				got, ok := r.Resolve(from, dir, count)
				if !ok {
					t.Fatalf("Resolve(%d, %v, %d) failed", from, dir, count)
				}
				if inside[got] {
					t.Errorf("Resolve(%d, %v, %d) = %d, inside a cluster", from, dir, count, got)
				}
			}
		}
	}
}

func TestResolveDownWithinWrappedLine(t *testing.T) {
	// One logical line wrapped hard into fragments [10, 10, 5].
	r := newFixture(t, strings.Repeat("x", 25), 10)

	if got, ok := r.Resolve(3, Down, 1); !ok || got != 13 {
		t.Errorf("down 1 = (%d,%v), want (13,true)", got, ok)
	}
	if got, ok := r.Resolve(3, Down, 2); !ok || got != 23 {
		t.Errorf("down 2 = (%d,%v), want (23,true)", got, ok)
	}
	if got, ok := r.Resolve(13, Up, 1); !ok || got != 3 {
		t.Errorf("up 1 = (%d,%v), want (3,true)", got, ok)
	}
	if got, ok := r.Resolve(23, Up, 2); !ok || got != 3 {
		t.Errorf("up 2 = (%d,%v), want (3,true)", got, ok)
	}
}

func TestResolveDownSaturatesAtDocumentEnd(t *testing.T) {
	r := newFixture(t, strings.Repeat("x", 25), 10)

	// From the last fragment there is nothing below.
	if got, ok := r.Resolve(21, Down, 1); !ok || got != 25 {
		t.Errorf("down past last fragment = (%d,%v), want (25,true)", got, ok)
	}
	if got, ok := r.Resolve(3, Down, 99); !ok || got != 25 {
		t.Errorf("down far past end = (%d,%v), want (25,true)", got, ok)
	}
}

func TestResolveUpSaturatesAtDocumentStart(t *testing.T) {
	r := newFixture(t, "abc\ndef", 0)

	if got, ok := r.Resolve(2, Up, 1); !ok || got != 0 {
		t.Errorf("up from row 0 = (%d,%v), want (0,true)", got, ok)
	}
	if got, ok := r.Resolve(6, Up, 99); !ok || got != 0 {
		t.Errorf("up far past start = (%d,%v), want (0,true)", got, ok)
	}
}

func TestResolveDownCrossesLineAndClamps(t *testing.T) {
	// Line 0 "hello" (total 6 with terminator), line 1 "hi" (length 2).
	r := newFixture(t, "hello\nhi", 0)

	// Sticky column 5 does not fit in line 1; clamp to its length.
	if got, ok := r.Resolve(5, Down, 1); !ok || got != 8 {
		t.Errorf("down with long sticky column = (%d,%v), want (8,true)", got, ok)
	}
	// Sticky column 1 fits.
	if got, ok := r.Resolve(1, Down, 1); !ok || got != 7 {
		t.Errorf("down with short sticky column = (%d,%v), want (7,true)", got, ok)
	}
}

func TestResolveStickyColumnRoundTrip(t *testing.T) {
	r := newFixture(t, "abcdefghij\nklmnopqrst", 0)

	for col := 0; col <= 9; col++ {
		down, ok := r.Resolve(col, Down, 1)
		if !ok {
			t.Fatalf("down from %d failed", col)
		}
		if down != 11+col {
			t.Errorf("down from col %d = %d, want %d", col, down, 11+col)
		}
		up, ok := r.Resolve(down, Up, 1)
		if !ok || up != col {
			t.Errorf("round trip from col %d = (%d,%v), want (%d,true)", col, up, ok, col)
		}
	}
}

func TestResolveDownAcrossWrappedThenLineBoundary(t *testing.T) {
	// Line 0 wraps to [10, 10, 5]; line 1 is "short".
	r := newFixture(t, strings.Repeat("x", 25)+"\nshort", 10)

	// Three fragments down from fragment 0 crosses into line 1.
	if got, ok := r.Resolve(3, Down, 3); !ok || got != 29 {
		t.Errorf("down 3 = (%d,%v), want (29,true)", got, ok)
	}
	if got, ok := r.Resolve(29, Up, 3); !ok || got != 3 {
		t.Errorf("up 3 = (%d,%v), want (3,true)", got, ok)
	}
}

func TestResolveZeroCountNormalizes(t *testing.T) {
	r := newFixture(t, "hello\nhi", 0)

	// A zero vertical count re-resolves the current fragment without
	// moving.
	if got, ok := r.Resolve(3, Down, 0); !ok || got != 3 {
		t.Errorf("normalize mid-line = (%d,%v), want (3,true)", got, ok)
	}
	if got, ok := r.Resolve(5, Up, 0); !ok || got != 5 {
		t.Errorf("normalize at line end = (%d,%v), want (5,true)", got, ok)
	}
	if got, ok := r.Resolve(2, Right, 0); !ok || got != 2 {
		t.Errorf("zero horizontal = (%d,%v), want (2,true)", got, ok)
	}
}

func TestResolveRejectsInvalidInput(t *testing.T) {
	r := newFixture(t, "hello", 0)

	if _, ok := r.Resolve(-1, Right, 1); ok {
		t.Error("negative position must fail")
	}
	if _, ok := r.Resolve(6, Right, 1); ok {
		t.Error("position past document end must fail")
	}
	if _, ok := r.Resolve(0, Right, -1); ok {
		t.Error("negative count must fail")
	}
	if _, ok := r.Resolve(0, Direction(9), 1); ok {
		t.Error("unknown direction must fail")
	}
}

func TestResolveEmptyDocument(t *testing.T) {
	r := newFixture(t, "", 0)

	if got, ok := r.Resolve(0, Right, 1); !ok || got != 0 {
		t.Errorf("right in empty doc = (%d,%v), want (0,true)", got, ok)
	}
	if got, ok := r.Resolve(0, Down, 1); !ok || got != 0 {
		t.Errorf("down in empty doc = (%d,%v), want (0,true)", got, ok)
	}
}
