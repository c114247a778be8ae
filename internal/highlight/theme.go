package highlight

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/emoor/caretline/internal/core"
)

// ErrBadTheme indicates a theme file that could not be parsed.
var ErrBadTheme = errors.New("malformed theme file")

// Theme maps token types to styles and carries the editor's base
// colors. Selection and line-highlight colors are derived from the
// base colors when a theme file does not set them.
type Theme struct {
	Name string

	Foreground core.Color
	Background core.Color

	// Selection is the selection background.
	Selection core.Color

	// LineHighlight is the current-line background.
	LineHighlight core.Color

	tokenStyles map[TokenType]core.Style
}

// DefaultTheme returns a dark theme with conventional token colors.
func DefaultTheme() *Theme {
	t := &Theme{
		Name:       "default-dark",
		Foreground: core.RGB(0xd4, 0xd4, 0xd4),
		Background: core.RGB(0x1e, 0x1e, 0x1e),
		tokenStyles: map[TokenType]core.Style{
			TokenKeyword:  core.DefaultStyle().WithForeground(core.RGB(0x56, 0x9c, 0xd6)).Bold(),
			TokenString:   core.DefaultStyle().WithForeground(core.RGB(0xce, 0x91, 0x78)),
			TokenComment:  core.DefaultStyle().WithForeground(core.RGB(0x6a, 0x99, 0x55)).Italic(),
			TokenNumber:   core.DefaultStyle().WithForeground(core.RGB(0xb5, 0xce, 0xa8)),
			TokenTypeName: core.DefaultStyle().WithForeground(core.RGB(0x4e, 0xc9, 0xb0)),
			TokenFunction: core.DefaultStyle().WithForeground(core.RGB(0xdc, 0xdc, 0xaa)),
		},
	}
	t.deriveColors()
	return t
}

// StyleFor returns the style for a token type, falling back to the
// theme foreground.
func (t *Theme) StyleFor(tok TokenType) core.Style {
	if s, ok := t.tokenStyles[tok]; ok {
		return s
	}
	return core.DefaultStyle().WithForeground(t.Foreground)
}

// BaseStyle returns the default style applied to a line before
// highlighting.
func (t *Theme) BaseStyle() core.Style {
	return core.Style{Foreground: t.Foreground, Background: t.Background}
}

// deriveColors fills Selection and LineHighlight from the base colors
// when unset: a foreground/background blend for selection, a slight
// background lightening for the line highlight.
func (t *Theme) deriveColors() {
	if !t.Selection.Set {
		t.Selection = t.Background.Blend(t.Foreground, 0.25)
	}
	if !t.LineHighlight.Set {
		t.LineHighlight = t.Background.Lighten(0.06)
	}
}

// LoadTheme reads a JSON theme file. Expected shape:
//
//	{
//	  "name": "...",
//	  "colors": {"foreground": "#rrggbb", "background": "#rrggbb",
//	             "selection": "#rrggbb", "lineHighlight": "#rrggbb"},
//	  "tokens": {"keyword": {"color": "#rrggbb", "bold": true}, ...}
//	}
//
// Unknown token names are ignored; missing colors fall back to the
// default theme's values.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	return parseTheme(data)
}

func parseTheme(data []byte) (*Theme, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrBadTheme
	}
	root := gjson.ParseBytes(data)

	t := DefaultTheme()
	if name := root.Get("name"); name.Exists() {
		t.Name = name.String()
	}

	if c, ok := themeColor(root, "colors.foreground"); ok {
		t.Foreground = c
	}
	if c, ok := themeColor(root, "colors.background"); ok {
		t.Background = c
	}
	t.Selection = core.ColorDefault
	t.LineHighlight = core.ColorDefault
	if c, ok := themeColor(root, "colors.selection"); ok {
		t.Selection = c
	}
	if c, ok := themeColor(root, "colors.lineHighlight"); ok {
		t.LineHighlight = c
	}

	var parseErr error
	root.Get("tokens").ForEach(func(key, value gjson.Result) bool {
		tok := TokenTypeFromString(key.String())
		if tok == TokenNone {
			return true
		}
		style := core.DefaultStyle()
		if colorStr := value.Get("color"); colorStr.Exists() {
			c, err := core.ParseHex(colorStr.String())
			if err != nil {
				parseErr = fmt.Errorf("%w: token %q: %v", ErrBadTheme, key.String(), err)
				return false
			}
			style = style.WithForeground(c)
		}
		if value.Get("bold").Bool() {
			style = style.Bold()
		}
		if value.Get("italic").Bool() {
			style = style.Italic()
		}
		if value.Get("underline").Bool() {
			style = style.Underline()
		}
		t.tokenStyles[tok] = style
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	t.deriveColors()
	return t, nil
}

func themeColor(root gjson.Result, path string) (core.Color, bool) {
	v := root.Get(path)
	if !v.Exists() {
		return core.ColorDefault, false
	}
	c, err := core.ParseHex(v.String())
	if err != nil {
		return core.ColorDefault, false
	}
	return c, true
}
