package progress

import (
	"math"

	"circprog/internal/config"
)

// updateDeterminate rotates the arc by one tick's worth of rotation.
func (d *Drawable) updateDeterminate(offset float64) {
	d.startAngle += offset
	if d.cfg.AutomaticallyRestart {
		d.startAngle = math.Mod(d.startAngle, 360)
	}
}

// SetProgress sets the determinate progress, in percent, and restarts the
// timeline from the matching angle. Values outside [0, 100] are clamped.
// It fails with a *ModeError unless the drawable is in determinate mode.
func (d *Drawable) SetProgress(percent int) error {
	if d.cfg.Mode != config.ModeDeterminate {
		return &ModeError{Op: "SetProgress", Mode: d.cfg.Mode}
	}

	percent = max(0, min(100, percent))
	angle := math.Mod(float64(percent)*360/100, 360)
	if d.cfg.Reverse {
		angle = -angle
	}
	d.initialAngle = angle

	d.resetAnimation(d.clock.Now())
	d.log.Debug("progress set")
	d.redraw()
	return nil
}

// InitialAngle returns the angle the arc restarts from.
func (d *Drawable) InitialAngle() float64 {
	return d.initialAngle
}
