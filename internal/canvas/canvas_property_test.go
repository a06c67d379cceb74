package canvas

import (
	"image/color"
	"testing"
	"testing/quick"

	"circprog/internal/surface"
)

// TestNewDimensionRounding verifies that New() always rounds dimensions
// to valid braille cell boundaries.
func TestNewDimensionRounding(t *testing.T) {
	property := func(width, height uint8) bool {
		w, h := int(width), int(height)
		if w == 0 || h == 0 {
			return true
		}

		c := New(w, h)
		if c.Width()%2 != 0 || c.Height()%4 != 0 {
			return false
		}
		if c.Width() < w || c.Height() < h {
			return false
		}
		return c.Width() <= w+1 && c.Height() <= h+3
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestSetAtRoundTrip verifies that At returns the color given to Set for
// any in-bounds coordinate.
func TestSetAtRoundTrip(t *testing.T) {
	property := func(width, height, x, y, r, g, b uint8) bool {
		c := New(int(width)+2, int(height)+4)
		px, py := int(x), int(y)
		if px >= c.Width() || py >= c.Height() {
			return true
		}

		col := color.NRGBA{R: r, G: g, B: b, A: 0xFF}
		c.Set(px, py, col)
		return c.At(px, py) == col && c.Get(px, py)
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestBrailleCharacterRange verifies that rendered characters are valid braille.
func TestBrailleCharacterRange(t *testing.T) {
	const brailleMin = '⠀'
	const brailleMax = '⣿'

	property := func(pixels [8]bool) bool {
		c := New(2, 4)
		positions := [][2]int{
			{0, 0}, {0, 1}, {0, 2}, {0, 3},
			{1, 0}, {1, 1}, {1, 2}, {1, 3},
		}
		for i, on := range pixels {
			if on {
				c.Set(positions[i][0], positions[i][1], red)
			}
		}

		str := c.String()
		if len(str) == 0 {
			return false
		}
		char := []rune(str)[0]
		return char >= brailleMin && char <= brailleMax
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestRasterStaysInsideCanvas verifies drawing never panics and that a disc
// never lights more pixels than its bounding square holds.
func TestRasterStaysInsideCanvas(t *testing.T) {
	property := func(cx, cy int8, radius uint8, start, sweep int16) bool {
		c := New(32, 32)
		center := surface.Point{X: float64(cx), Y: float64(cy)}
		r := float64(radius % 40)

		c.FillCircle(center, r, red)
		side := int(2*r) + 2
		if c.Lit() > side*side {
			return false
		}

		c.StrokeArc(surface.Square(center, r), float64(start), float64(sweep), 3, blue)
		c.StrokeCircle(center, r, 1, blue)
		return c.Lit() <= c.Width()*c.Height()
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestResetIdempotence verifies that calling Reset multiple times
// has the same effect as calling it once.
func TestResetIdempotence(t *testing.T) {
	property := func(width, height uint8) bool {
		w, h := int(width)+2, int(height)+4

		c1 := New(w, h)
		c2 := New(w, h)
		c1.FillCircle(surface.Point{X: float64(w) / 2, Y: float64(h) / 2}, float64(w), red)
		c2.FillCircle(surface.Point{X: float64(w) / 2, Y: float64(h) / 2}, float64(w), red)

		c1.Reset()
		c2.Reset()
		c2.Reset()

		return c1.Lit() == 0 && c2.Lit() == 0
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}
