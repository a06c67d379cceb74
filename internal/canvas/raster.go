package canvas

import (
	"image/color"
	"math"

	"circprog/internal/surface"
)

// minHalfWidth keeps strokes at least one pixel wide.
const minHalfWidth = 0.5

// FillCircle lights every pixel whose center lies inside the disc.
func (c *Canvas) FillCircle(center surface.Point, radius float64, col color.NRGBA) {
	if radius <= 0 || col.A == 0 {
		return
	}
	c.paint(center, radius+minHalfWidth, col, func(dist, _ float64) bool {
		return dist <= radius
	})
}

// StrokeCircle lights every pixel within width/2 of the circle.
func (c *Canvas) StrokeCircle(center surface.Point, radius, width float64, col color.NRGBA) {
	if radius <= 0 || width <= 0 || col.A == 0 {
		return
	}
	half := math.Max(width/2, minHalfWidth)
	c.paint(center, radius+half, col, func(dist, _ float64) bool {
		return math.Abs(dist-radius) <= half
	})
}

// StrokeArc lights the pixels of the ring inscribed in bounds whose angle
// falls within the arc. A sweep of 360 degrees or more draws the full ring.
func (c *Canvas) StrokeArc(bounds surface.Rect, startDeg, sweepDeg, width float64, col color.NRGBA) {
	radius := math.Min(bounds.Width(), bounds.Height()) / 2
	if radius <= 0 || width <= 0 || col.A == 0 {
		return
	}
	if math.Abs(sweepDeg) >= 360 {
		c.StrokeCircle(bounds.Center(), radius, width, col)
		return
	}

	half := math.Max(width/2, minHalfWidth)
	// Half a pixel of slack along the ring so tiny arcs stay visible.
	slack := minHalfWidth / radius * 180 / math.Pi
	c.paint(bounds.Center(), radius+half, col, func(dist, angle float64) bool {
		return math.Abs(dist-radius) <= half && withinArc(angle, startDeg, sweepDeg, slack)
	})
}

// paint calls inside for every pixel of the square of side 2*extent around
// center and lights the pixels it accepts. Angles are in degrees, clockwise
// from +X.
func (c *Canvas) paint(center surface.Point, extent float64, col color.NRGBA, inside func(dist, angle float64) bool) {
	x0 := max(0, int(math.Floor(center.X-extent)))
	x1 := min(c.width-1, int(math.Ceil(center.X+extent)))
	y0 := max(0, int(math.Floor(center.Y-extent)))
	y1 := min(c.height-1, int(math.Ceil(center.Y+extent)))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			angle := math.Atan2(dy, dx) * 180 / math.Pi
			if inside(math.Hypot(dx, dy), angle) {
				c.pixels[y][x] = col
			}
		}
	}
}

// withinArc reports whether angle lies on the arc from start spanning sweep
// degrees, allowing slack degrees at both ends.
func withinArc(angle, start, sweep, slack float64) bool {
	rel := normalize(angle - start)
	if sweep < 0 {
		rel = normalize(start - angle)
		sweep = -sweep
	}
	return rel <= sweep+slack || rel >= 360-slack
}

// normalize maps a into [0, 360).
func normalize(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
