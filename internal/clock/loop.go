package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrLoopClosed is returned by Do once the loop has stopped running.
var ErrLoopClosed = errors.New("clock: loop closed")

// Loop is a wall-clock Clock that runs every scheduled callback, and every
// function passed to Do, on the goroutine executing Run. Code driven by a
// Loop is therefore never entered concurrently.
type Loop struct {
	tasks   chan func()
	done    chan struct{} // closed when Run returns
	running atomic.Bool
}

// NewLoop creates a Loop. Call Run to start processing callbacks.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 16),
		done:  make(chan struct{}),
	}
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f to run on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		_ = l.post(func() {
			// Stop may have raced with the timer firing.
			if t.fired.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer *time.Timer
	fired atomic.Bool
}

// Stop cancels the callback unless it already ran.
func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.fired.CompareAndSwap(false, true)
}

// Do runs f on the loop goroutine and waits for it to finish.
// It returns ErrLoopClosed if the loop is no longer running.
func (l *Loop) Do(f func()) error {
	finished := make(chan struct{})
	if err := l.post(func() {
		defer close(finished)
		f()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		// Run may have exited after picking up the task; wait for it if so.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	}
}

func (l *Loop) post(f func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}

	select {
	case l.tasks <- f:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Run processes callbacks until ctx is cancelled. It must be called at most
// once; it returns ctx.Err() when the context ends.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("clock: loop already running")
	}
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.tasks:
			f()
		}
	}
}

// Done returns a channel that is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
