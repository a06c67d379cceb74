// Package colorutil provides color blending and parsing for stroke and entrance colors.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent is the zero color, used for fills that should not be drawn.
var Transparent = color.NRGBA{}

// Mix blends from and to linearly per channel, alpha included.
// The fraction is clamped to [0, 1]: 0 yields from, 1 yields to.
func Mix(from, to color.NRGBA, fraction float64) color.NRGBA {
	fraction = Clamp01(fraction)

	// RGB goes through go-colorful; alpha is blended separately since
	// colorful.Color carries no alpha channel.
	blended := toColorful(from).BlendRgb(toColorful(to), fraction).Clamped()
	r, g, b := blended.RGB255()
	a := float64(from.A) + (float64(to.A)-float64(from.A))*fraction

	return color.NRGBA{R: r, G: g, B: b, A: uint8(a + 0.5)}
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Parse reads a color in one of the forms "#RGB", "#RRGGBB" or "#AARRGGBB".
// Colors without an alpha component are fully opaque.
func Parse(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: must start with '#'", s)
	}

	alpha := uint8(0xFF)
	rgb := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		alpha = uint8(a)
		rgb = "#" + s[3:]
	}

	c, err := colorful.Hex(rgb)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FromARGB converts a packed 0xAARRGGBB value.
func FromARGB(v uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Hex formats c as "#RRGGBB", or "#AARRGGBB" when it is not fully opaque.
func Hex(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}
