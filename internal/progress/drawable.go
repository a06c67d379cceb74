// Package progress implements the animation core of a circular progress
// indicator: the run-state machine, the indeterminate and determinate
// engines, the entrance and exit transitions and the frame renderer.
//
// A Drawable is driven by a clock.Clock. Start arms a tick one frame
// interval ahead; every tick advances the active engine from the elapsed
// time, requests a redraw and re-arms itself until the indicator is
// stopped. Rendering is a pure function of the configuration and a Frame,
// so a host can draw at any moment without disturbing the animation.
//
// A Drawable is not safe for concurrent use. All calls, including the clock
// callbacks, must happen on one goroutine; clock.Loop provides one.
package progress

import (
	"image/color"
	"time"

	"github.com/google/uuid"

	"circprog/internal/clock"
	"circprog/internal/colorutil"
	"circprog/internal/config"
	"circprog/internal/logger"
	"circprog/internal/surface"
)

// Observer receives notifications about state changes. Callbacks run
// synchronously on the goroutine driving the Drawable.
type Observer interface {
	RunStateChanged(from, to RunState)
	PhaseChanged(from, to Phase)
	Ticked()
}

// Option customizes a Drawable.
type Option func(*Drawable)

// WithLogger sets the logger used for lifecycle and tick messages.
func WithLogger(l logger.Logger) Option {
	return func(d *Drawable) { d.log = l }
}

// WithObserver registers an observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(d *Drawable) { d.observers = append(d.observers, o) }
}

// WithInvalidate sets the function called whenever the indicator needs to be
// redrawn.
func WithInvalidate(f func()) Option {
	return func(d *Drawable) { d.invalidate = f }
}

// WithFrameInterval overrides clock.FrameInterval as the delay between ticks.
func WithFrameInterval(interval time.Duration) Option {
	return func(d *Drawable) {
		if interval > 0 {
			d.frameInterval = interval
		}
	}
}

// Drawable is an animated circular progress indicator.
type Drawable struct {
	id            string
	cfg           *config.Config
	clock         clock.Clock
	log           logger.Logger
	observers     []Observer
	invalidate    func()
	frameInterval time.Duration

	runState RunState
	phase    Phase

	lastUpdate         time.Time
	lastPhaseChange    time.Time
	lastRunStateChange time.Time

	initialAngle float64
	startAngle   float64
	sweepAngle   float64
	colorIndex   int

	// exitColor is the stroke color held while stopping.
	exitColor color.NRGBA

	pending clock.Timer
}

// New creates a stopped Drawable. cfg is validated and copied; a nil cfg
// means config.Default().
func New(cfg *config.Config, clk clock.Clock, opts ...Option) (*Drawable, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Drawable{
		id:            uuid.NewString(),
		cfg:           cfg.Clone(),
		clock:         clk,
		frameInterval: clock.FrameInterval,
		runState:      Stopped,
		phase:         PhaseStretch,
		initialAngle:  cfg.InitialAngle,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = logger.NewNop()
	}
	d.log = d.log.WithFields(logger.Fields{"drawable": d.id})
	d.resetAnimation(clk.Now())

	return d, nil
}

// ID returns the unique identifier of the drawable.
func (d *Drawable) ID() string { return d.id }

// Config returns a copy of the drawable's current configuration.
func (d *Drawable) Config() *config.Config { return d.cfg.Clone() }

// RunState returns the current lifecycle state.
func (d *Drawable) RunState() RunState { return d.runState }

// Phase returns the current indeterminate phase.
func (d *Drawable) Phase() Phase { return d.phase }

// IsRunning reports whether the drawable is in any state other than Stopped.
func (d *Drawable) IsRunning() bool {
	return d.runState != Stopped
}

// Start begins the animation. It is a no-op if already running.
func (d *Drawable) Start() {
	if d.IsRunning() {
		return
	}

	now := d.clock.Now()
	d.resetAnimation(now)
	if d.cfg.InDuration > 0 {
		d.setPhase(PhaseHidden, now)
		d.setRunState(Starting, now)
	} else {
		d.setPhase(PhaseStretch, now)
		d.setRunState(Running, now)
	}

	d.arm()
	d.redraw()
}

// Stop ends the animation, playing the exit transition if one is
// configured. It is a no-op if already stopped.
func (d *Drawable) Stop() {
	if !d.IsRunning() {
		return
	}

	now := d.clock.Now()
	if d.cfg.OutDuration <= 0 {
		d.setRunState(Stopped, now)
		d.cancel()
		d.redraw()
		return
	}

	d.exitColor = d.strokeColor(now)
	wasStarted := d.runState == Started
	d.setRunState(Stopping, now)
	if wasStarted {
		d.arm()
		d.redraw()
	}
}

// SetStrokeSize changes the stroke width in pixels.
func (d *Drawable) SetStrokeSize(size int) error {
	if size < 0 {
		return &config.ValidationError{Field: "strokeSize", Reason: "must be non-negative"}
	}
	d.cfg.StrokeSize = size
	d.redraw()
	return nil
}

// SetStrokeColors replaces the stroke color sequence. The active color index
// wraps if the new sequence is shorter.
func (d *Drawable) SetStrokeColors(colors []color.NRGBA) error {
	if len(colors) == 0 {
		return &config.ValidationError{Field: "strokeColors", Reason: "must contain at least one color"}
	}
	d.cfg.StrokeColors = append([]color.NRGBA(nil), colors...)
	d.colorIndex %= len(colors)
	d.redraw()
	return nil
}

// Frame returns the geometry and color of the indicator at the current time.
func (d *Drawable) Frame() Frame {
	return d.frameAt(d.clock.Now())
}

// Draw renders the current frame onto s within bounds.
func (d *Drawable) Draw(s surface.Surface, bounds surface.Rect) {
	surface.Draw(s, Render(d.cfg, d.Frame(), bounds))
}

// tick is the clock callback that advances the animation by one frame.
func (d *Drawable) tick() {
	d.pending = nil
	if d.runState == Stopped {
		return
	}

	now := d.clock.Now()
	offset := d.rotateOffset(now)

	if d.runState == Stopping {
		if now.Sub(d.lastRunStateChange) >= d.cfg.OutDuration {
			d.setRunState(Stopped, now)
			d.cancel()
			d.notifyTicked()
			d.redraw()
			return
		}
	} else {
		switch d.cfg.Mode {
		case config.ModeDeterminate:
			d.updateDeterminate(offset)
		default:
			d.updateIndeterminate(now, offset)
		}
		d.updateEntrance(now)
	}

	d.log.Trace("tick")
	d.notifyTicked()
	d.arm()
	d.redraw()
}

// rotateOffset returns the rotation accumulated since the previous tick and
// records now as the last tick time.
func (d *Drawable) rotateOffset(now time.Time) float64 {
	elapsed := now.Sub(d.lastUpdate)
	d.lastUpdate = now
	if d.cfg.RotateDuration <= 0 {
		return 0
	}

	offset := float64(elapsed) * 360 / float64(d.cfg.RotateDuration)
	if d.cfg.Reverse {
		offset = -offset
	}
	return offset
}

// resetAnimation restores the timeline, angles and color index.
func (d *Drawable) resetAnimation(now time.Time) {
	d.lastUpdate = now
	d.lastPhaseChange = now
	d.startAngle = d.initialAngle
	d.colorIndex = 0
	d.sweepAngle, _ = d.sweepBounds()
}

// sweepBounds returns the minimum and maximum sweep angles signed by the
// rotation direction.
func (d *Drawable) sweepBounds() (lo, hi float64) {
	lo, hi = d.cfg.MinSweepAngle, d.cfg.MaxSweepAngle
	if d.cfg.Reverse {
		return -lo, -hi
	}
	return lo, hi
}

// strokeColor returns the active stroke color. While holding the shrunk arc
// the color blends from the previous entry to the current one.
func (d *Drawable) strokeColor(now time.Time) color.NRGBA {
	colors := d.cfg.StrokeColors
	current := colors[d.colorIndex%len(colors)]
	if d.phase != PhaseKeepShrink || len(colors) == 1 {
		return current
	}

	prev := colors[(d.colorIndex+len(colors)-1)%len(colors)]
	return colorutil.Mix(prev, current, fraction(now.Sub(d.lastPhaseChange), d.cfg.KeepDuration))
}

func (d *Drawable) arm() {
	if d.pending != nil || d.runState == Stopped {
		return
	}
	d.pending = d.clock.AfterFunc(d.frameInterval, d.tick)
}

func (d *Drawable) cancel() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

func (d *Drawable) redraw() {
	if d.invalidate != nil {
		d.invalidate()
	}
}

func (d *Drawable) setRunState(s RunState, now time.Time) {
	d.lastRunStateChange = now
	if s == d.runState {
		return
	}

	from := d.runState
	d.runState = s
	d.log.WithFields(logger.Fields{"from": from.String(), "to": s.String()}).Debug("run state changed")
	for _, o := range d.observers {
		o.RunStateChanged(from, s)
	}
}

func (d *Drawable) setPhase(p Phase, now time.Time) {
	d.lastPhaseChange = now
	if p == d.phase {
		return
	}

	from := d.phase
	d.phase = p
	for _, o := range d.observers {
		o.PhaseChanged(from, p)
	}
}

func (d *Drawable) notifyTicked() {
	for _, o := range d.observers {
		o.Ticked()
	}
}

// fraction returns elapsed/total clamped to [0, 1]. A zero total counts as
// complete.
func fraction(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return colorutil.Clamp01(float64(elapsed) / float64(total))
}
