// Package preview renders a progress indicator at a chosen point of its
// animation without waiting for wall-clock time.
//
// Simulate drives a progress.Drawable on a manual clock, so the produced
// frame is deterministic for a given configuration and timeline.
package preview

import (
	"fmt"
	"time"

	"circprog/internal/canvas"
	"circprog/internal/clock"
	"circprog/internal/colorutil"
	"circprog/internal/config"
	"circprog/internal/progress"
	"circprog/internal/surface"
)

// Default canvas size, in braille cells.
const (
	DefaultCols = 12
	DefaultRows = 6
)

// MaxElapsed bounds the simulated timeline. Every frame up to the captured
// moment is replayed, so the cost grows with the elapsed time.
const MaxElapsed = 10 * time.Minute

// Options selects the moment to capture and the canvas size.
type Options struct {
	// Elapsed is the time since Start at which the frame is captured.
	Elapsed time.Duration
	// StopAfter, when positive, calls Stop this long after Start.
	StopAfter time.Duration
	// Progress, when set, is applied with SetProgress before starting.
	Progress *int
	// Cols and Rows are the canvas size in braille cells.
	Cols, Rows int
}

// Result is a captured frame with its rendering.
type Result struct {
	Elapsed time.Duration
	Frame   progress.Frame
	Ops     []surface.Op
	Canvas  *canvas.Canvas
}

// Simulate starts a drawable built from cfg, advances it to opts.Elapsed and
// renders the frame at that moment.
func Simulate(cfg *config.Config, opts Options, dopts ...progress.Option) (*Result, error) {
	if opts.Elapsed < 0 || opts.StopAfter < 0 {
		return nil, fmt.Errorf("elapsed time must be non-negative")
	}
	if opts.Elapsed > MaxElapsed || opts.StopAfter > MaxElapsed {
		return nil, fmt.Errorf("elapsed time must not exceed %s", MaxElapsed)
	}
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}

	clk := clock.NewManual(time.Unix(0, 0))
	d, err := progress.New(cfg, clk, dopts...)
	if err != nil {
		return nil, err
	}
	if opts.Progress != nil {
		if err := d.SetProgress(*opts.Progress); err != nil {
			return nil, err
		}
	}

	d.Start()
	if opts.StopAfter > 0 && opts.StopAfter <= opts.Elapsed {
		clk.Advance(opts.StopAfter)
		d.Stop()
		clk.Advance(opts.Elapsed - opts.StopAfter)
	} else {
		clk.Advance(opts.Elapsed)
	}

	c := canvas.NewCells(opts.Cols, opts.Rows)
	frame := d.Frame()
	ops := progress.Render(d.Config(), frame, surface.RectWH(float64(c.Width()), float64(c.Height())))
	surface.Draw(c, ops)

	return &Result{
		Elapsed: opts.Elapsed,
		Frame:   frame,
		Ops:     ops,
		Canvas:  c,
	}, nil
}

// Summary is a JSON-friendly description of a Result.
type Summary struct {
	ElapsedMs       int64       `json:"elapsed_ms"`
	RunState        string      `json:"run_state"`
	Phase           string      `json:"phase"`
	StartAngle      float64     `json:"start_angle"`
	SweepAngle      float64     `json:"sweep_angle"`
	Color           string      `json:"color"`
	ColorIndex      int         `json:"color_index"`
	EntranceSteps   *float64    `json:"entrance_steps,omitempty"`
	ExitStrokeWidth *float64    `json:"exit_stroke_width,omitempty"`
	Ops             []OpSummary `json:"ops"`
}

// OpSummary describes one draw operation.
type OpSummary struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Start  float64 `json:"start,omitempty"`
	Sweep  float64 `json:"sweep,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Color  string  `json:"color"`
}

// Summarize converts r into a Summary.
func (r *Result) Summarize() Summary {
	f := r.Frame
	s := Summary{
		ElapsedMs:  r.Elapsed.Milliseconds(),
		RunState:   f.RunState.String(),
		Phase:      f.Phase.String(),
		StartAngle: f.StartAngle,
		SweepAngle: f.SweepAngle,
		Color:      colorutil.Hex(f.Color),
		ColorIndex: f.ColorIndex,
		Ops:        make([]OpSummary, 0, len(r.Ops)),
	}
	if f.Entrance != nil {
		steps := f.Entrance.Steps
		s.EntranceSteps = &steps
	}
	if f.Exit != nil {
		width := f.Exit.StrokeWidth
		s.ExitStrokeWidth = &width
	}

	for _, op := range r.Ops {
		s.Ops = append(s.Ops, OpSummary{
			Kind:   op.Kind.String(),
			X:      op.Center.X,
			Y:      op.Center.Y,
			Radius: op.Radius,
			Start:  op.Start,
			Sweep:  op.Sweep,
			Width:  op.Width,
			Color:  colorutil.Hex(op.Color),
		})
	}
	return s
}
