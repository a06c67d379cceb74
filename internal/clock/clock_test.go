package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/quick"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	var seen []time.Duration

	record := func(name string) func() {
		return func() {
			order = append(order, name)
			seen = append(seen, m.Now().Sub(epoch))
		}
	}
	m.AfterFunc(30*time.Millisecond, record("c"))
	m.AfterFunc(10*time.Millisecond, record("a"))
	m.AfterFunc(10*time.Millisecond, record("b"))
	m.AfterFunc(50*time.Millisecond, record("late"))

	m.Advance(40 * time.Millisecond)

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 30 * time.Millisecond}, seen)
	assert.Equal(t, epoch.Add(40*time.Millisecond), m.Now())
	assert.Equal(t, 1, m.Pending())
}

func TestManualStop(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	timer := m.AfterFunc(time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	m.Advance(time.Second)
	assert.False(t, fired)
	assert.Zero(t, m.Pending())
}

func TestManualStopAfterFire(t *testing.T) {
	m := NewManual(epoch)
	timer := m.AfterFunc(time.Millisecond, func() {})
	m.Advance(time.Millisecond)
	assert.False(t, timer.Stop())
}

func TestManualNestedScheduling(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		m.AfterFunc(FrameInterval, tick)
	}
	m.AfterFunc(FrameInterval, tick)

	m.Advance(10 * FrameInterval)
	assert.Equal(t, 10, count)
	assert.Equal(t, 1, m.Pending())
}

func TestManualNegativeDelay(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	m.AfterFunc(-time.Second, func() { fired = true })
	m.Advance(0)
	assert.True(t, fired)
	assert.Equal(t, epoch, m.Now())
}

// TestManualMonotonicProperty verifies Now never goes backwards across
// arbitrary advances with interleaved timers.
func TestManualMonotonicProperty(t *testing.T) {
	property := func(steps []uint8) bool {
		m := NewManual(epoch)
		last := m.Now()
		ok := true
		for _, s := range steps {
			d := time.Duration(s) * time.Millisecond
			m.AfterFunc(d/2, func() {
				if m.Now().Before(last) {
					ok = false
				}
				last = m.Now()
			})
			m.Advance(d)
			if m.Now().Before(last) {
				ok = false
			}
			last = m.Now()
		}
		return ok
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

func TestLoopDoRunsOnLoop(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	value := 0
	require.NoError(t, l.Do(func() { value = 42 }))
	assert.Equal(t, 42, value)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	err := l.Do(func() {})
	assert.True(t, errors.Is(err, ErrLoopClosed))
}

func TestLoopAfterFunc(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	fired := make(chan struct{})
	l.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer callback did not run")
	}
}

func TestLoopTimerStop(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	var fired atomic.Bool
	timer := l.AfterFunc(20*time.Millisecond, func() { fired.Store(true) })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, l.Do(func() {}))
	assert.False(t, fired.Load())
}

func TestLoopRunTwice(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	require.NoError(t, l.Do(func() {}))

	assert.Error(t, l.Run(ctx))
	cancel()
	<-l.Done()
}
