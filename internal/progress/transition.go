package progress

import (
	"image/color"
	"math"
	"time"

	"circprog/internal/config"
)

// Frame is the drawable state needed to render one frame.
type Frame struct {
	RunState RunState
	Phase    Phase

	StartAngle float64
	SweepAngle float64
	Color      color.NRGBA
	ColorIndex int

	// Entrance is set while the indicator is Starting.
	Entrance *Entrance
	// Exit is set while the indicator is Stopping.
	Exit *Exit
}

// Entrance describes the growing rings shown while the indicator appears.
type Entrance struct {
	// Steps is the number of ring widths grown so far.
	Steps float64
	// Rings are ordered from the innermost outwards.
	Rings []Ring
	// ShowArc reports whether the arc is drawn over the rings.
	ShowArc bool
}

// Ring is one band of the entrance animation. Radii are fractions of the
// indicator radius; an Inner of zero means a filled disc.
type Ring struct {
	Inner float64
	Outer float64
	Color color.NRGBA
}

// Exit describes the shrinking stroke shown while the indicator disappears.
type Exit struct {
	StrokeWidth float64
}

func (d *Drawable) frameAt(now time.Time) Frame {
	f := Frame{
		RunState:   d.runState,
		Phase:      d.phase,
		StartAngle: d.startAngle,
		SweepAngle: d.sweepAngle,
		Color:      d.strokeColor(now),
		ColorIndex: d.colorIndex,
	}

	elapsed := now.Sub(d.lastRunStateChange)
	switch d.runState {
	case Starting:
		f.Entrance = entrance(d.cfg, elapsed, d.phase)
	case Stopping:
		f.Color = d.exitColor
		f.Exit = exit(d.cfg, elapsed)
	}
	return f
}

// updateEntrance promotes a Starting drawable to Running once the entrance
// duration has passed, and hands the arc over from Hidden to Stretch as soon
// as the rings have finished growing.
func (d *Drawable) updateEntrance(now time.Time) {
	if d.runState != Starting {
		return
	}

	elapsed := now.Sub(d.lastRunStateChange)
	if elapsed > d.cfg.InDuration {
		d.setRunState(Running, now)
		if d.phase == PhaseHidden {
			d.resetAnimation(now)
			d.setPhase(PhaseStretch, now)
		}
		return
	}

	if d.phase == PhaseHidden && entranceDone(d.cfg, elapsed) {
		d.resetAnimation(now)
		d.setPhase(PhaseStretch, now)
	}
}

// entranceProgress returns the elapsed fraction of the entrance animation
// and the number of ring widths grown at that point.
func entranceProgress(cfg *config.Config, elapsed time.Duration) (t, steps float64) {
	t = 1
	if cfg.InDuration > 0 {
		t = float64(elapsed) / float64(cfg.InDuration)
	}
	stepTime := 1 / (cfg.InStepPercent*float64(len(cfg.InStepColors)+2) + 1)
	return t, t / stepTime
}

func entranceDone(cfg *config.Config, elapsed time.Duration) bool {
	t, steps := entranceProgress(cfg, elapsed)
	return steps >= 1/cfg.InStepPercent || t >= 1
}

func entrance(cfg *config.Config, elapsed time.Duration, phase Phase) *Entrance {
	_, steps := entranceProgress(cfg, elapsed)
	e := &Entrance{Steps: steps, ShowArc: phase != PhaseHidden}

	colors := cfg.InStepColors
	// Rings past the color list are holes; only the last one affects the
	// inner radius of the first colored ring.
	first := min(int(math.Floor(steps)), len(colors))

	var inner, outer float64
	for i := first; i >= 0; i-- {
		inner = outer
		outer = math.Min(1, (steps-float64(i))*cfg.InStepPercent)
		if i >= len(colors) || outer <= 0 {
			continue
		}
		if inner > 0 && outer <= inner {
			break
		}
		e.Rings = append(e.Rings, Ring{Inner: inner, Outer: outer, Color: colors[i]})
	}
	return e
}

func exit(cfg *config.Config, elapsed time.Duration) *Exit {
	if cfg.OutDuration <= 0 {
		return &Exit{}
	}
	remaining := max(0, cfg.OutDuration-elapsed)
	return &Exit{StrokeWidth: float64(cfg.StrokeSize) * float64(remaining) / float64(cfg.OutDuration)}
}
