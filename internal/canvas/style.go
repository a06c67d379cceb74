package canvas

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"circprog/internal/colorutil"
)

// Styled renders the canvas like String, with every run of cells sharing a
// color wrapped in a lipgloss foreground style. The renderer decides the
// color profile; an ASCII profile yields the same text as String.
func (c *Canvas) Styled(r *lipgloss.Renderer) string {
	var sb strings.Builder

	for cy := 0; cy < c.CharHeight(); cy++ {
		if cy > 0 {
			sb.WriteByte('\n')
		}

		var run strings.Builder
		var runColor color.NRGBA
		var runLit bool
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runLit {
				sb.WriteString(r.NewStyle().Foreground(lipgloss.Color(rgbHex(runColor))).Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}

		for cx := 0; cx < c.CharWidth(); cx++ {
			col, lit := c.cellColor(cx, cy)
			if lit != runLit || col != runColor {
				flush()
				runColor, runLit = col, lit
			}
			run.WriteRune(c.charAt(cx, cy))
		}
		flush()
	}

	return sb.String()
}

// rgbHex formats c as "#RRGGBB", composited over a black terminal
// background.
func rgbHex(c color.NRGBA) string {
	premul := func(v uint8) uint8 {
		return uint8((uint32(v)*uint32(c.A) + 127) / 255)
	}
	return colorutil.Hex(color.NRGBA{R: premul(c.R), G: premul(c.G), B: premul(c.B), A: 0xFF})
}
