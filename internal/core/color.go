// Package core provides the shared visual types used by the layout,
// highlight and render packages: colors, styles, style spans, and
// cell-space geometry.
package core

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color. The zero value is the surface default
// (no explicit color set).
type Color struct {
	R, G, B uint8
	Set     bool
}

// ColorDefault is the surface's default color.
var ColorDefault = Color{}

// ErrBadHexColor indicates a malformed hex color string.
var ErrBadHexColor = errors.New("malformed hex color")

// RGB creates a color from red, green and blue components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// ParseHex parses a "#rrggbb" or "#rgb" color string.
func ParseHex(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return ColorDefault, ErrBadHexColor
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return ColorDefault, ErrBadHexColor
		}
		return RGB(r*17, g*17, b*17), nil
	case 6:
		var vals [3]uint8
		for i := 0; i < 3; i++ {
			hi, okHi := hexNibble(hex[i*2])
			lo, okLo := hexNibble(hex[i*2+1])
			if !okHi || !okLo {
				return ColorDefault, ErrBadHexColor
			}
			vals[i] = hi<<4 | lo
		}
		return RGB(vals[0], vals[1], vals[2]), nil
	default:
		return ColorDefault, ErrBadHexColor
	}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Hex returns the "#rrggbb" form of the color, or "default" for the
// unset color.
func (c Color) Hex() string {
	if !c.Set {
		return "default"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Equal reports whether two colors are the same.
func (c Color) Equal(other Color) bool {
	if !c.Set || !other.Set {
		return c.Set == other.Set
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Blend mixes c toward other by t in [0, 1] using Lab interpolation.
// Blending with an unset color returns the other operand unchanged.
func (c Color) Blend(other Color, t float64) Color {
	if !c.Set {
		return other
	}
	if !other.Set {
		return c
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mixed := c.colorful().BlendLab(other.colorful(), t).Clamped()
	r, g, b := mixed.RGB255()
	return RGB(r, g, b)
}

// Lighten moves the color toward white by t in [0, 1].
func (c Color) Lighten(t float64) Color {
	return c.Blend(RGB(255, 255, 255), t)
}

// Darken moves the color toward black by t in [0, 1].
func (c Color) Darken(t float64) Color {
	return c.Blend(RGB(0, 0, 0), t)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
