package core

// Attribute is a bitmask of text display attributes.
type Attribute uint8

const (
	// AttrBold renders text in bold.
	AttrBold Attribute = 1 << iota

	// AttrItalic renders text in italics.
	AttrItalic

	// AttrUnderline underlines text.
	AttrUnderline

	// AttrDim renders text at reduced intensity.
	AttrDim

	// AttrReverse swaps foreground and background.
	AttrReverse

	// AttrStrikethrough strikes through text.
	AttrStrikethrough
)

// Has reports whether all bits of attr are set.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr == attr
}

// With returns a with the bits of attr added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a with the bits of attr removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// Style describes how a run of text is drawn.
type Style struct {
	Foreground Color
	Background Color
	Attrs      Attribute
}

// DefaultStyle returns the style using surface default colors and no
// attributes.
func DefaultStyle() Style {
	return Style{}
}

// WithForeground returns the style with the foreground replaced.
func (s Style) WithForeground(c Color) Style {
	s.Foreground = c
	return s
}

// WithBackground returns the style with the background replaced.
func (s Style) WithBackground(c Color) Style {
	s.Background = c
	return s
}

// Bold returns the style with the bold attribute set.
func (s Style) Bold() Style {
	s.Attrs = s.Attrs.With(AttrBold)
	return s
}

// Italic returns the style with the italic attribute set.
func (s Style) Italic() Style {
	s.Attrs = s.Attrs.With(AttrItalic)
	return s
}

// Underline returns the style with the underline attribute set.
func (s Style) Underline() Style {
	s.Attrs = s.Attrs.With(AttrUnderline)
	return s
}

// Dim returns the style with the dim attribute set.
func (s Style) Dim() Style {
	s.Attrs = s.Attrs.With(AttrDim)
	return s
}

// Merge overlays other on s. Colors set in other win; attributes are
// combined.
func (s Style) Merge(other Style) Style {
	out := s
	if other.Foreground.Set {
		out.Foreground = other.Foreground
	}
	if other.Background.Set {
		out.Background = other.Background
	}
	out.Attrs = s.Attrs | other.Attrs
	return out
}

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Foreground.Equal(other.Foreground) &&
		s.Background.Equal(other.Background) &&
		s.Attrs == other.Attrs
}

// StyleSpan applies a style to a half-open range of line-local
// character offsets [Start, End).
type StyleSpan struct {
	Start int
	End   int
	Style Style
}

// IsEmpty reports whether the span covers no characters.
func (sp StyleSpan) IsEmpty() bool {
	return sp.End <= sp.Start
}

// ResolveSpans flattens a base style plus overlay spans into the
// effective style at each character offset of a line of length n.
// Later spans override earlier ones, matching application order in the
// render pipeline.
func ResolveSpans(base Style, spans []StyleSpan, n int) []Style {
	out := make([]Style, n)
	for i := range out {
		out[i] = base
	}
	for _, sp := range spans {
		start, end := sp.Start, sp.End
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			out[i] = out[i].Merge(sp.Style)
		}
	}
	return out
}
