package preview

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circprog/internal/config"
	"circprog/internal/progress"
	"circprog/internal/surface"
)

func TestSimulateRunningFrame(t *testing.T) {
	cfg := config.Default()
	cfg.InDuration = 0

	res, err := Simulate(cfg, Options{Elapsed: 200 * time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, progress.Running, res.Frame.RunState)
	assert.Equal(t, DefaultCols*2, res.Canvas.Width())
	assert.Equal(t, DefaultRows*4, res.Canvas.Height())
	require.Len(t, res.Ops, 1)
	assert.Equal(t, surface.KindStrokeArc, res.Ops[0].Kind)
	assert.Positive(t, res.Canvas.Lit())
}

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := config.Default()
	a, err := Simulate(cfg, Options{Elapsed: 733 * time.Millisecond})
	require.NoError(t, err)
	b, err := Simulate(cfg, Options{Elapsed: 733 * time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, a.Frame, b.Frame)
	assert.Equal(t, a.Canvas.String(), b.Canvas.String())
}

func TestSimulateEntrance(t *testing.T) {
	res, err := Simulate(config.Default(), Options{Elapsed: 100 * time.Millisecond, Cols: 20, Rows: 10})
	require.NoError(t, err)

	assert.Equal(t, progress.Starting, res.Frame.RunState)
	require.NotNil(t, res.Frame.Entrance)
	assert.NotEmpty(t, res.Ops)

	s := res.Summarize()
	require.NotNil(t, s.EntranceSteps)
	assert.Nil(t, s.ExitStrokeWidth)
	assert.Equal(t, "starting", s.RunState)
}

func TestSimulateStop(t *testing.T) {
	cfg := config.Default()
	cfg.InDuration = 0

	res, err := Simulate(cfg, Options{Elapsed: 300 * time.Millisecond, StopAfter: 100 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, progress.Stopping, res.Frame.RunState)
	require.NotNil(t, res.Summarize().ExitStrokeWidth)
	assert.InDelta(t, 2.0, *res.Summarize().ExitStrokeWidth, 1e-9)

	res, err = Simulate(cfg, Options{Elapsed: time.Second, StopAfter: 100 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, progress.Stopped, res.Frame.RunState)
	assert.Empty(t, res.Ops)
	assert.Zero(t, res.Canvas.Lit())
}

func TestSimulateProgress(t *testing.T) {
	cfg := config.Default()
	cfg.Mode = config.ModeDeterminate
	cfg.InDuration = 0
	cfg.RotateDuration = 0
	half := 50

	res, err := Simulate(cfg, Options{Elapsed: 50 * time.Millisecond, Progress: &half})
	require.NoError(t, err)
	assert.Equal(t, 180.0, res.Frame.StartAngle)

	s := res.Summarize()
	require.Len(t, s.Ops, 1)
	assert.Equal(t, "stroke_arc", s.Ops[0].Kind)
	assert.Equal(t, -90.0, s.Ops[0].Start)
	assert.Equal(t, 180.0, s.Ops[0].Sweep)
	assert.Equal(t, "#0099FF", s.Ops[0].Color)
}

func TestSimulateErrors(t *testing.T) {
	half := 50
	_, err := Simulate(config.Default(), Options{Progress: &half})
	assert.True(t, errors.Is(err, progress.ErrInvalidMode))

	bad := config.Default()
	bad.StrokeColors = nil
	_, err = Simulate(bad, Options{})
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	_, err = Simulate(config.Default(), Options{Elapsed: -time.Second})
	assert.Error(t, err)

	_, err = Simulate(config.Default(), Options{Elapsed: MaxElapsed + time.Millisecond})
	assert.ErrorContains(t, err, "must not exceed")

	_, err = Simulate(config.Default(), Options{Elapsed: time.Second, StopAfter: 2 * MaxElapsed})
	assert.ErrorContains(t, err, "must not exceed")
}

func TestSimulateAtMaxElapsed(t *testing.T) {
	res, err := Simulate(config.Default(), Options{Elapsed: MaxElapsed, StopAfter: time.Second})
	require.NoError(t, err)
	assert.Equal(t, progress.Stopped, res.Frame.RunState)
}
