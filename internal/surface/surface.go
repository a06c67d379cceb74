// Package surface defines the drawing primitives a progress indicator is
// rendered with, and a recorded form of them that can be replayed.
package surface

import (
	"fmt"
	"image/color"
)

// Point is a position on a surface, in pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectWH returns the rectangle at the origin with the given size.
func RectWH(w, h float64) Rect {
	return Rect{Right: w, Bottom: h}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Square returns the square of side 2*radius centered on c.
func Square(c Point, radius float64) Rect {
	return Rect{Left: c.X - radius, Top: c.Y - radius, Right: c.X + radius, Bottom: c.Y + radius}
}

// Surface is a 2D drawing target. Angles are in degrees, 0 pointing along
// +X and increasing clockwise (Y grows downwards). A negative sweep draws
// counter-clockwise from the start angle.
type Surface interface {
	// FillCircle paints a solid disc.
	FillCircle(center Point, radius float64, c color.NRGBA)

	// StrokeCircle paints a ring of the given width centered on radius.
	StrokeCircle(center Point, radius, width float64, c color.NRGBA)

	// StrokeArc paints an arc of the ellipse inscribed in bounds.
	StrokeArc(bounds Rect, startDeg, sweepDeg, width float64, c color.NRGBA)
}

// Kind identifies a drawing primitive.
type Kind int

const (
	KindFillCircle Kind = iota
	KindStrokeCircle
	KindStrokeArc
)

// String returns the name of the primitive.
func (k Kind) String() string {
	switch k {
	case KindFillCircle:
		return "fill_circle"
	case KindStrokeCircle:
		return "stroke_circle"
	case KindStrokeArc:
		return "stroke_arc"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one recorded drawing call. Only the fields relevant to Kind are set:
// circles use Center and Radius, arcs use Bounds, Start and Sweep.
type Op struct {
	Kind   Kind
	Center Point
	Radius float64
	Bounds Rect
	Start  float64
	Sweep  float64
	Width  float64
	Color  color.NRGBA
}

// Draw replays ops onto s in order.
func Draw(s Surface, ops []Op) {
	for _, op := range ops {
		switch op.Kind {
		case KindFillCircle:
			s.FillCircle(op.Center, op.Radius, op.Color)
		case KindStrokeCircle:
			s.StrokeCircle(op.Center, op.Radius, op.Width, op.Color)
		case KindStrokeArc:
			s.StrokeArc(op.Bounds, op.Start, op.Sweep, op.Width, op.Color)
		}
	}
}

// FillOp returns the operation for FillCircle.
func FillOp(center Point, radius float64, c color.NRGBA) Op {
	return Op{Kind: KindFillCircle, Center: center, Radius: radius, Color: c}
}

// RingOp returns the operation for StrokeCircle.
func RingOp(center Point, radius, width float64, c color.NRGBA) Op {
	return Op{Kind: KindStrokeCircle, Center: center, Radius: radius, Width: width, Color: c}
}

// ArcOp returns the operation for StrokeArc. Center and Radius are derived
// from bounds.
func ArcOp(bounds Rect, startDeg, sweepDeg, width float64, c color.NRGBA) Op {
	return Op{
		Kind:   KindStrokeArc,
		Center: bounds.Center(),
		Radius: bounds.Width() / 2,
		Bounds: bounds,
		Start:  startDeg,
		Sweep:  sweepDeg,
		Width:  width,
		Color:  c,
	}
}

// Recorder is a Surface that stores every call it receives.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) FillCircle(center Point, radius float64, c color.NRGBA) {
	r.Ops = append(r.Ops, FillOp(center, radius, c))
}

func (r *Recorder) StrokeCircle(center Point, radius, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, RingOp(center, radius, width, c))
}

func (r *Recorder) StrokeArc(bounds Rect, startDeg, sweepDeg, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, ArcOp(bounds, startDeg, sweepDeg, width, c))
}

// Reset discards recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
