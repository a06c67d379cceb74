// Package clock provides the time source and frame scheduling used to drive
// progress animations.
//
// Two implementations are provided: Loop, which runs scheduled callbacks
// serially on a single goroutine against wall-clock time, and Manual, whose
// time only moves when Advance is called.
package clock

import "time"

// FrameInterval is the default delay between two animation frames (~60 FPS).
const FrameInterval = 16 * time.Millisecond

// Clock supplies the current time and schedules callbacks.
type Clock interface {
	// Now returns the current time. Successive calls never go backwards.
	Now() time.Time

	// AfterFunc arranges for f to be called once, no earlier than d from now.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback created by Clock.AfterFunc.
type Timer interface {
	// Stop cancels the callback. It returns false if the callback already
	// ran or was stopped before.
	Stop() bool
}
