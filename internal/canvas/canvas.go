// Package canvas provides a colored braille canvas for terminal graphics.
//
// Each terminal character is a 2x4 braille cell, so a canvas of w x h
// characters offers 2w x 4h pixels. Canvas implements surface.Surface, which
// lets a progress indicator be rasterized straight into it.
package canvas

import (
	"image/color"
	"strings"
)

// brailleBase is the Unicode code point for an empty braille character.
const brailleBase = '⠀'

// pixelToBit maps (x, y) within a 2x4 braille cell to the bit value.
// x: 0-1 (column), y: 0-3 (row)
//
// Braille dot layout:
//
//	┌───┬───┐
//	│ 1 │ 4 │  Row 0
//	├───┼───┤
//	│ 2 │ 5 │  Row 1
//	├───┼───┤
//	│ 3 │ 6 │  Row 2
//	├───┼───┤
//	│ 7 │ 8 │  Row 3
//	└───┴───┘
//	Col 0  Col 1
var pixelToBit = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40}, // column 0: dots 1, 2, 3, 7
	{0x08, 0x10, 0x20, 0x80}, // column 1: dots 4, 5, 6, 8
}

// Canvas is a grid of colored pixels. A pixel whose alpha is zero is off.
type Canvas struct {
	width  int             // width in pixels
	height int             // height in pixels
	pixels [][]color.NRGBA // pixel data [y][x]
}

// New creates a canvas with the given pixel dimensions.
// Width and height are rounded up to the nearest braille cell boundary
// (width to a multiple of 2, height to a multiple of 4).
func New(width, height int) *Canvas {
	if width%2 != 0 {
		width++
	}
	if height%4 != 0 {
		height += 4 - (height % 4)
	}

	pixels := make([][]color.NRGBA, height)
	for y := range pixels {
		pixels[y] = make([]color.NRGBA, width)
	}

	return &Canvas{
		width:  width,
		height: height,
		pixels: pixels,
	}
}

// NewCells creates a canvas of cols x rows braille characters.
func NewCells(cols, rows int) *Canvas {
	return New(cols*2, rows*4)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// CharWidth returns the canvas width in braille characters.
func (c *Canvas) CharWidth() int {
	return c.width / 2
}

// CharHeight returns the canvas height in braille characters (rows).
func (c *Canvas) CharHeight() int {
	return c.height / 4
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set paints the pixel at (x, y). Painting with a transparent color turns
// the pixel off.
func (c *Canvas) Set(x, y int, col color.NRGBA) {
	if c.inBounds(x, y) {
		c.pixels[y][x] = col
	}
}

// Clear turns off the pixel at (x, y).
func (c *Canvas) Clear(x, y int) {
	if c.inBounds(x, y) {
		c.pixels[y][x] = color.NRGBA{}
	}
}

// Get reports whether the pixel at (x, y) is on.
// Returns false for out-of-bounds coordinates.
func (c *Canvas) Get(x, y int) bool {
	return c.At(x, y).A > 0
}

// At returns the color of the pixel at (x, y), or transparent when out of
// bounds.
func (c *Canvas) At(x, y int) color.NRGBA {
	if !c.inBounds(x, y) {
		return color.NRGBA{}
	}
	return c.pixels[y][x]
}

// Lit returns the number of pixels that are on.
func (c *Canvas) Lit() int {
	n := 0
	for y := range c.pixels {
		for x := range c.pixels[y] {
			if c.pixels[y][x].A > 0 {
				n++
			}
		}
	}
	return n
}

// Reset turns off all pixels.
func (c *Canvas) Reset() {
	for y := range c.pixels {
		clear(c.pixels[y])
	}
}

// charAt returns the braille character for the cell at character position (cx, cy).
func (c *Canvas) charAt(cx, cy int) rune {
	px := cx * 2
	py := cy * 4

	var char rune = brailleBase
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 4; dy++ {
			if c.Get(px+dx, py+dy) {
				char += pixelToBit[dx][dy]
			}
		}
	}

	return char
}

// cellColor returns the average color of the lit pixels in a cell, and
// false if none is lit.
func (c *Canvas) cellColor(cx, cy int) (color.NRGBA, bool) {
	var r, g, b, a, n int
	for dx := 0; dx < 2; dx++ {
		for dy := 0; dy < 4; dy++ {
			p := c.At(cx*2+dx, cy*4+dy)
			if p.A == 0 {
				continue
			}
			r += int(p.R)
			g += int(p.G)
			b += int(p.B)
			a += int(p.A)
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: uint8(a / n)}, true
}

// Row renders a single row of braille characters at the given character row index.
func (c *Canvas) Row(cy int) string {
	if cy < 0 || cy >= c.CharHeight() {
		return ""
	}

	var sb strings.Builder
	sb.Grow(c.CharWidth() * 3)

	for cx := 0; cx < c.CharWidth(); cx++ {
		sb.WriteRune(c.charAt(cx, cy))
	}

	return sb.String()
}

// String renders the entire canvas as a multi-line braille string without
// colors.
func (c *Canvas) String() string {
	var sb strings.Builder
	charHeight := c.CharHeight()

	for cy := 0; cy < charHeight; cy++ {
		if cy > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(c.Row(cy))
	}

	return sb.String()
}
