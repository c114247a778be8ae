package core

import (
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ffffff", RGB(255, 255, 255), false},
		{"#000000", RGB(0, 0, 0), false},
		{"#1a2b3c", RGB(0x1a, 0x2b, 0x3c), false},
		{"#abc", RGB(0xaa, 0xbb, 0xcc), false},
		{"ffffff", ColorDefault, true},
		{"#ggg", ColorDefault, true},
		{"#12345", ColorDefault, true},
		{"", ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): unexpected error %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got.Hex(), tt.want.Hex())
		}
	}
}

func TestColorBlendDefaults(t *testing.T) {
	c := RGB(100, 100, 100)
	if got := ColorDefault.Blend(c, 0.5); !got.Equal(c) {
		t.Errorf("default blend should return other operand, got %v", got.Hex())
	}
	if got := c.Blend(ColorDefault, 0.5); !got.Equal(c) {
		t.Errorf("blend with default should return receiver, got %v", got.Hex())
	}
}

func TestColorBlendEndpoints(t *testing.T) {
	a := RGB(10, 20, 30)
	b := RGB(200, 100, 50)

	if got := a.Blend(b, 0); !got.Equal(a) {
		t.Errorf("blend t=0 should be a, got %v", got.Hex())
	}
	if got := a.Blend(b, 1); !got.Equal(b) {
		t.Errorf("blend t=1 should be b, got %v", got.Hex())
	}
}

func TestStyleMerge(t *testing.T) {
	base := DefaultStyle().WithForeground(RGB(1, 2, 3))
	over := DefaultStyle().WithBackground(RGB(4, 5, 6)).Bold()

	merged := base.Merge(over)
	if !merged.Foreground.Equal(RGB(1, 2, 3)) {
		t.Errorf("merge lost base foreground: %v", merged.Foreground.Hex())
	}
	if !merged.Background.Equal(RGB(4, 5, 6)) {
		t.Errorf("merge missed overlay background: %v", merged.Background.Hex())
	}
	if !merged.Attrs.Has(AttrBold) {
		t.Error("merge missed overlay attribute")
	}

	// Overlay foreground wins.
	over2 := DefaultStyle().WithForeground(RGB(9, 9, 9))
	if got := base.Merge(over2); !got.Foreground.Equal(RGB(9, 9, 9)) {
		t.Errorf("overlay foreground should win, got %v", got.Foreground.Hex())
	}
}

func TestAttributes(t *testing.T) {
	a := AttrBold.With(AttrItalic)
	if !a.Has(AttrBold) || !a.Has(AttrItalic) {
		t.Error("expected bold and italic set")
	}
	a = a.Without(AttrBold)
	if a.Has(AttrBold) {
		t.Error("bold should be cleared")
	}
	if !a.Has(AttrItalic) {
		t.Error("italic should survive clearing bold")
	}
}

func TestResolveSpans(t *testing.T) {
	base := DefaultStyle().WithForeground(RGB(1, 1, 1))
	red := DefaultStyle().WithForeground(RGB(255, 0, 0))
	spans := []StyleSpan{
		{Start: 2, End: 4, Style: red},
		{Start: -3, End: 100, Style: DefaultStyle().Bold()}, // clamped
	}

	styles := ResolveSpans(base, spans, 6)
	if len(styles) != 6 {
		t.Fatalf("expected 6 styles, got %d", len(styles))
	}
	if !styles[0].Foreground.Equal(RGB(1, 1, 1)) {
		t.Error("offset 0 should keep base foreground")
	}
	if !styles[2].Foreground.Equal(RGB(255, 0, 0)) {
		t.Error("offset 2 should be red")
	}
	if !styles[4].Foreground.Equal(RGB(1, 1, 1)) {
		t.Error("offset 4 should revert to base")
	}
	for i, s := range styles {
		if !s.Attrs.Has(AttrBold) {
			t.Errorf("offset %d should be bold from clamped span", i)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromSize(2, 3, 4, 2)
	if !r.Contains(Point{X: 2, Y: 3}) {
		t.Error("origin should be contained")
	}
	if !r.Contains(Point{X: 5, Y: 4}) {
		t.Error("interior point should be contained")
	}
	if r.Contains(Point{X: 6, Y: 3}) {
		t.Error("right edge is exclusive")
	}
	if r.Contains(Point{X: 2, Y: 5}) {
		t.Error("bottom edge is exclusive")
	}
}

func TestRectUnion(t *testing.T) {
	a := RectFromSize(0, 0, 2, 1)
	b := RectFromSize(5, 2, 1, 3)

	u := a.Union(b)
	want := RectFromSize(0, 0, 6, 5)
	if u != want {
		t.Errorf("union = %+v, want %+v", u, want)
	}

	if got := a.Union(Rect{}); got != a {
		t.Errorf("union with empty should be identity, got %+v", got)
	}
	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty union should be other operand, got %+v", got)
	}
}

func TestClusterWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"a", 1},
		{"世", 2},
		{"", 0},
		{"é", 1}, // e + combining acute
	}
	for _, tt := range tests {
		if got := ClusterWidth(tt.in); got != tt.want {
			t.Errorf("ClusterWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
