package progress

import (
	"image/color"
	"math"

	"circprog/internal/config"
	"circprog/internal/surface"
)

// Render returns the draw operations for frame f inside bounds. It has no
// side effects and returns nil for a stopped frame.
func Render(cfg *config.Config, f Frame, bounds surface.Rect) []surface.Op {
	switch f.RunState {
	case Stopped:
		return nil
	case Starting:
		return renderEntrance(cfg, f, bounds)
	case Stopping:
		return renderExit(cfg, f, bounds)
	default:
		return renderRunning(cfg, f, bounds)
	}
}

func innerSize(cfg *config.Config, bounds surface.Rect) float64 {
	return math.Min(bounds.Width(), bounds.Height()) - float64(cfg.Padding)*2
}

func renderEntrance(cfg *config.Config, f Frame, bounds surface.Rect) []surface.Op {
	center := bounds.Center()
	maxRadius := innerSize(cfg, bounds) / 2
	if maxRadius <= 0 {
		return nil
	}

	var ops []surface.Op
	if f.Entrance != nil {
		for _, ring := range f.Entrance.Rings {
			if !visible(ring.Color) {
				continue
			}
			if ring.Inner == 0 {
				ops = append(ops, surface.FillOp(center, ring.Outer*maxRadius, ring.Color))
				continue
			}
			radius := (ring.Inner + ring.Outer) / 2 * maxRadius
			width := (ring.Outer - ring.Inner) * maxRadius
			ops = append(ops, surface.RingOp(center, radius, width, ring.Color))
		}
	}

	if f.Entrance == nil || f.Entrance.ShowArc {
		stroke := float64(cfg.StrokeSize)
		radius := maxRadius - stroke/2
		if radius > 0 && visible(f.Color) {
			ops = append(ops, surface.ArcOp(surface.Square(center, radius), f.StartAngle, f.SweepAngle, stroke, f.Color))
		}
	}
	return ops
}

func renderExit(cfg *config.Config, f Frame, bounds surface.Rect) []surface.Op {
	if f.Exit == nil || f.Exit.StrokeWidth <= 0 || !visible(f.Color) {
		return nil
	}

	size := f.Exit.StrokeWidth
	radius := (innerSize(cfg, bounds) - float64(cfg.StrokeSize)*2 + size) / 2
	if radius <= 0 {
		return nil
	}
	return []surface.Op{
		surface.ArcOp(surface.Square(bounds.Center(), radius), f.StartAngle, f.SweepAngle, size, f.Color),
	}
}

func renderRunning(cfg *config.Config, f Frame, bounds surface.Rect) []surface.Op {
	center := bounds.Center()
	stroke := float64(cfg.StrokeSize)
	radius := (innerSize(cfg, bounds) - stroke) / 2
	if radius <= 0 {
		return nil
	}

	var ops []surface.Op
	if visible(cfg.CircleInsideColor) {
		ops = append(ops, surface.FillOp(center, radius, cfg.CircleInsideColor))
	}
	// A determinate arc only sits on the full ring when progress is kept.
	if visible(cfg.CircleBackgroundColor) && (cfg.Mode != config.ModeDeterminate || cfg.KeepDeterminateProgress) {
		ops = append(ops, surface.RingOp(center, radius, stroke, cfg.CircleBackgroundColor))
	}
	if !visible(f.Color) {
		return ops
	}

	start, sweep := f.StartAngle, f.SweepAngle
	if cfg.Mode == config.ModeDeterminate && cfg.KeepDeterminateProgress {
		// The arc is anchored at the top and the accumulated rotation is
		// drawn as its length.
		start, sweep = determinateArc(cfg, f.StartAngle)
	}
	return append(ops, surface.ArcOp(surface.Square(center, radius), start, sweep, stroke, f.Color))
}

// determinateArc returns the start and sweep of a kept determinate arc whose
// end is at angle.
func determinateArc(cfg *config.Config, angle float64) (start, sweep float64) {
	start = -90
	if cfg.Reverse {
		start = 270
	}
	sweep = angle
	if cfg.Inverted {
		if cfg.Reverse {
			sweep += 360
		} else {
			sweep -= 360
		}
	}
	return start, sweep
}

func visible(c color.NRGBA) bool {
	return c.A > 0
}
