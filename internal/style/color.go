// Package style holds the per-phase visual presets and blends them.
package style

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const hexDigits = "0123456789abcdefABCDEF"

// Color is an sRGB color with 8-bit channels.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	s = "#" + strings.TrimPrefix(s, "#")
	if n := len(s) - 1; (n != 3 && n != 6) || strings.Trim(s[1:], hexDigits) != "" {
		return Color{}, fmt.Errorf("style: invalid color %q", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("style: invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level tables.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as lowercase "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Lerp interpolates channel-wise towards o, rounding and clamping each
// channel to [0, 255]. Lerp of a color with itself returns it unchanged.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: lerpChannel(c.R, o.R, t),
		G: lerpChannel(c.G, o.G, t),
		B: lerpChannel(c.B, o.B, t),
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
