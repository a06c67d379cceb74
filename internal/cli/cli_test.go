package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circprog/internal/config"
	"circprog/internal/preview"
)

// execute runs the command tree on fs and returns stdout and stderr.
func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	var out, errOut bytes.Buffer
	root := NewRootCommand("1.2.3", fs)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "circprog 1.2.3 ("))
}

func TestFrameText(t *testing.T) {
	out, _, err := execute(t, nil, "frame", "--elapsed", "500ms", "--cols", "6", "--rows", "3", "--color", "never")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Len(t, []rune(line), 6)
	}
}

func TestFrameJSON(t *testing.T) {
	out, _, err := execute(t, nil, "frame", "--json", "--elapsed", "1s", "--set", "inAnimDuration=0")
	require.NoError(t, err)

	var s preview.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "running", s.RunState)
	assert.Equal(t, int64(1000), s.ElapsedMs)
	assert.NotEmpty(t, s.Ops)
}

func TestFrameFromConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ring.yaml", []byte(
		"mode: determinate\ninAnimDuration: 0\nrotateDuration: 0\nstrokeColors: [\"#FF0000\"]\n"), 0o644))

	out, _, err := execute(t, fs, "frame", "--json", "--config", "ring.yaml", "--progress", "50", "--elapsed", "100ms")
	require.NoError(t, err)

	var s preview.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "running", s.RunState)
	assert.Equal(t, 180.0, s.StartAngle)
	assert.Equal(t, "#FF0000", s.Color)
}

func TestFrameSetOverridesConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "ring.yaml", []byte("mode: determinate\n"), 0o644))

	_, _, err := execute(t, fs, "frame", "--config", "ring.yaml", "--set", "mode=indeterminate", "--progress", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indeterminate")
}

func TestFrameEnvironment(t *testing.T) {
	t.Setenv("CIRCPROG_SET", "inAnimDuration=0")
	t.Setenv("CIRCPROG_ELAPSED", "250ms")

	out, _, err := execute(t, nil, "frame", "--json")
	require.NoError(t, err)

	var s preview.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, int64(250), s.ElapsedMs)
	assert.Equal(t, "running", s.RunState)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing config file", []string{"frame", "--config", "nope.yaml"}, "failed to read config file"},
		{"malformed option", []string{"frame", "--set", "padding"}, "expected key=value"},
		{"unknown option", []string{"frame", "--set", "wobble=1"}, "wobble"},
		{"invalid option value", []string{"frame", "--set", "strokeSize=-1"}, "strokeSize"},
		{"bad color mode", []string{"frame", "--color", "sometimes"}, "color mode"},
		{"negative elapsed", []string{"frame", "--elapsed", "-1s"}, "non-negative"},
		{"elapsed too long", []string{"frame", "--elapsed", "1000h"}, "must not exceed"},
		{"NaN sweep", []string{"frame", "--set", "maxSweepAngle=NaN"}, "maxSweepAngle"},
		{"NaN step percent", []string{"frame", "--set", "inStepPercent=NaN"}, "inStepPercent"},
		{"run bad canvas", []string{"run", "--cols", "0"}, "canvas size"},
		{"run bad fps", []string{"run", "--fps", "0"}, "fps"},
		{"unknown command", []string{"spin"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInvalidConfigFileIsValidationError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("strokeColors: []\n"), 0o644))

	_, _, err := execute(t, fs, "frame", "--config", "bad.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRunForDuration(t *testing.T) {
	start := time.Now()
	out, _, err := execute(t, nil, "run",
		"--duration", "80ms",
		"--color", "never",
		"--cols", "4", "--rows", "2",
		"--fps", "120", "--max-redraws", "30",
		"--set", "inAnimDuration=20", "--set", "outAnimDuration=20")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	assert.Contains(t, out, "\033[?25l")
	assert.True(t, strings.HasSuffix(out, "\033[?25h"))
}

func TestRunWithMetrics(t *testing.T) {
	_, errOut, err := execute(t, nil, "run",
		"--duration", "30ms",
		"--color", "never",
		"--metrics-addr", "127.0.0.1:0",
		"--set", "inAnimDuration=0", "--set", "outAnimDuration=0")
	require.NoError(t, err)
	assert.Contains(t, errOut, "serving metrics")
}

func TestRunProgressRequiresDeterminate(t *testing.T) {
	_, _, err := execute(t, nil, "run", "--duration", "10ms", "--progress", "20", "--color", "never")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indeterminate")
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"mode = determinate", "strokeColors=#FF0000,#00FF00"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"mode": "determinate", "strokeColors": "#FF0000,#00FF00"}, opts)

	_, err = parseOptions([]string{"=1"})
	assert.Error(t, err)
}

func TestFrameOps(t *testing.T) {
	out, _, err := execute(t, nil, "frame", "--ops", "--color", "never", "--elapsed", "1s",
		"--set", "inAnimDuration=0", "--set", "circleBackgroundColor=#40404040")
	require.NoError(t, err)

	assert.Contains(t, out, "op ")
	assert.Contains(t, out, "stroke_circle")
	assert.Contains(t, out, "stroke_arc")
	assert.Contains(t, out, "#40404040")
}
