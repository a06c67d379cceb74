package progress

import (
	"time"

	"circprog/internal/colorutil"
)

// updateIndeterminate advances the stretch/shrink cycle by one tick.
//
// The arc grows from the minimum to the maximum sweep during Stretch, holds
// for the keep duration, shrinks back during Shrink while its leading edge
// keeps moving forward, holds again and then moves to the next color.
func (d *Drawable) updateIndeterminate(now time.Time, offset float64) {
	lo, hi := d.sweepBounds()
	inPhase := now.Sub(d.lastPhaseChange)

	switch d.phase {
	case PhaseStretch:
		d.startAngle += offset
		if d.cfg.TransformDuration <= 0 {
			d.sweepAngle = lo
			d.setPhase(PhaseKeepStretch, now)
			return
		}

		raw := float64(inPhase) / float64(d.cfg.TransformDuration)
		d.sweepAngle = d.interpolate(raw)*(hi-lo) + lo
		if raw > 1 {
			d.sweepAngle = hi
			d.setPhase(PhaseKeepStretch, now)
		}

	case PhaseKeepStretch:
		d.startAngle += offset
		if inPhase > d.cfg.KeepDuration {
			d.setPhase(PhaseShrink, now)
		}

	case PhaseShrink:
		if d.cfg.TransformDuration <= 0 {
			d.startAngle += offset
			d.sweepAngle = lo
			d.advanceColor()
			d.setPhase(PhaseKeepShrink, now)
			return
		}

		raw := float64(inPhase) / float64(d.cfg.TransformDuration)
		sweep := (1-d.interpolate(raw))*(hi-lo) + lo
		// Move the start by the amount the sweep lost so the leading edge
		// stays where it was.
		d.startAngle += offset + d.sweepAngle - sweep
		d.sweepAngle = sweep
		if raw > 1 {
			d.sweepAngle = lo
			d.advanceColor()
			d.setPhase(PhaseKeepShrink, now)
		}

	case PhaseKeepShrink:
		d.startAngle += offset
		if inPhase > d.cfg.KeepDuration {
			d.setPhase(PhaseStretch, now)
		}
	}
}

// interpolate applies the transform curve to a time fraction. Both the input
// and the output are clamped to [0, 1].
func (d *Drawable) interpolate(raw float64) float64 {
	return colorutil.Clamp01(d.cfg.TransformCurve(colorutil.Clamp01(raw)))
}

func (d *Drawable) advanceColor() {
	d.colorIndex = (d.colorIndex + 1) % len(d.cfg.StrokeColors)
}
