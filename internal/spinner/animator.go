// Package spinner animates a progress indicator in a terminal.
// The package separates animation timing (Animator) from visual rendering
// (the Animation interface), allowing different outputs to be plugged in.
package spinner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"circprog/internal/clock"
	"circprog/internal/config"
	"circprog/internal/progress"
)

// stopGrace is added to the exit animation duration when waiting for a
// drawable to stop.
const stopGrace = time.Second

// Animator runs a progress.Drawable on its own event loop and hands every
// redraw to an Animation. All drawable calls happen on the loop goroutine.
type Animator struct {
	cfg       *config.Config
	opts      []progress.Option
	animation Animation

	mu       sync.Mutex
	loop     *clock.Loop
	drawable *progress.Drawable
	cancel   context.CancelFunc // cancels the loop goroutine
	done     chan struct{}      // closed when the loop goroutine has exited
	stopped  chan struct{}      // closed when the drawable reaches Stopped
}

// NewAnimator creates an Animator for cfg. Extra drawable options, such as
// a logger or a metrics observer, are applied on every Start.
func NewAnimator(cfg *config.Config, animation Animation, opts ...progress.Option) (*Animator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Animator{
		cfg:       cfg.Clone(),
		opts:      opts,
		animation: animation,
	}, nil
}

// Start begins the animation in a background goroutine.
// If the animation is already running, this is a no-op.
func (a *Animator) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		return nil // already running
	}

	loop := clock.NewLoop()
	stopped := make(chan struct{})
	var d *progress.Drawable
	opts := append([]progress.Option{
		progress.WithInvalidate(func() { a.animation.Render(d) }),
		progress.WithObserver(&stopSignal{ch: stopped}),
	}, a.opts...)

	d, err := progress.New(a.cfg, loop, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()

	err = loop.Do(func() {
		a.animation.Start()
		d.Start()
	})
	if err != nil {
		cancel()
		<-done
		return fmt.Errorf("failed to start animation: %w", err)
	}

	a.loop, a.drawable = loop, d
	a.cancel, a.done, a.stopped = cancel, done, stopped
	return nil
}

// SetProgress forwards to the running drawable.
func (a *Animator) SetProgress(percent int) error {
	var err error
	if doErr := a.do(func(d *progress.Drawable) { err = d.SetProgress(percent) }); doErr != nil {
		return doErr
	}
	return err
}

// Frame returns the running drawable's current frame.
func (a *Animator) Frame() (progress.Frame, error) {
	var f progress.Frame
	err := a.do(func(d *progress.Drawable) { f = d.Frame() })
	return f, err
}

func (a *Animator) do(f func(d *progress.Drawable)) error {
	a.mu.Lock()
	loop, d := a.loop, a.drawable
	a.mu.Unlock()
	if loop == nil {
		return fmt.Errorf("animation is not running")
	}
	return loop.Do(func() { f(d) })
}

// Stop plays the exit animation, waits for the drawable to stop and shuts
// the loop down. If the animation is not running, this is a no-op.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel == nil {
		return // not running
	}

	if err := a.loop.Do(a.drawable.Stop); err == nil {
		select {
		case <-a.stopped:
		case <-time.After(a.cfg.OutDuration + stopGrace):
		}
		_ = a.loop.Do(a.animation.Stop)
	}

	a.cancel()
	<-a.done
	a.loop, a.drawable = nil, nil
	a.cancel = nil
}

// stopSignal closes ch the first time the drawable stops.
type stopSignal struct {
	ch   chan struct{}
	once sync.Once
}

func (s *stopSignal) RunStateChanged(_, to progress.RunState) {
	if to == progress.Stopped {
		s.once.Do(func() { close(s.ch) })
	}
}

func (s *stopSignal) PhaseChanged(_, _ progress.Phase) {}

func (s *stopSignal) Ticked() {}
