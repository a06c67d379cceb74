// Package config provides the validated drawing and animation configuration
// of a circular progress indicator.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"circprog/internal/colorutil"
	"circprog/internal/easing"
)

// Mode selects which progress engine drives the indicator.
type Mode int

const (
	// ModeIndeterminate spins a stretching and shrinking arc.
	ModeIndeterminate Mode = iota
	// ModeDeterminate rotates from a settable progress value.
	ModeDeterminate
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDeterminate:
		return "determinate"
	case ModeIndeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "determinate":
		return ModeDeterminate, nil
	case "indeterminate":
		return ModeIndeterminate, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: must be one of [determinate indeterminate]", s)
	}
}

// Default values, matching the stock look of the indicator.
const (
	DefaultMaxSweepAngle     = 270.0
	DefaultMinSweepAngle     = 1.0
	DefaultStrokeSize        = 4
	DefaultRotateDuration    = 500 * time.Millisecond
	DefaultTransformDuration = 400 * time.Millisecond
	DefaultKeepDuration      = 200 * time.Millisecond
	DefaultInDuration        = 400 * time.Millisecond
	DefaultInStepPercent     = 0.5
	DefaultOutDuration       = 400 * time.Millisecond
)

var (
	// DefaultStrokeColor is used when no stroke colors are configured.
	DefaultStrokeColor = colorutil.FromARGB(0xFF0099FF)

	// DefaultInStepColors tint the rings of the entrance animation.
	DefaultInStepColors = []color.NRGBA{
		colorutil.FromARGB(0xFFB5D4FF),
		colorutil.FromARGB(0xFFDEEAFC),
		colorutil.FromARGB(0xFFFAFFFE),
	}
)

// ErrInvalidConfig is matched by every ValidationError.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError reports a configuration field that breaks an invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Config holds the drawing and animation parameters of one indicator.
// Angles are in degrees, sizes in pixels.
type Config struct {
	Padding       int
	InitialAngle  float64
	MaxSweepAngle float64
	MinSweepAngle float64
	StrokeSize    int
	StrokeColors  []color.NRGBA
	Reverse       bool

	RotateDuration    time.Duration
	TransformDuration time.Duration
	KeepDuration      time.Duration
	TransformCurve    easing.Curve

	Mode Mode

	// Entrance animation.
	InDuration    time.Duration
	InStepPercent float64
	InStepColors  []color.NRGBA

	// Exit animation.
	OutDuration time.Duration

	KeepDeterminateProgress bool
	AutomaticallyRestart    bool
	Inverted                bool

	CircleBackgroundColor color.NRGBA
	CircleInsideColor     color.NRGBA
}

// Default returns a configuration with every option at its default value.
func Default() *Config {
	return &Config{
		MaxSweepAngle:           DefaultMaxSweepAngle,
		MinSweepAngle:           DefaultMinSweepAngle,
		StrokeSize:              DefaultStrokeSize,
		StrokeColors:            []color.NRGBA{DefaultStrokeColor},
		RotateDuration:          DefaultRotateDuration,
		TransformDuration:       DefaultTransformDuration,
		KeepDuration:            DefaultKeepDuration,
		TransformCurve:          easing.Decelerate,
		Mode:                    ModeIndeterminate,
		InDuration:              DefaultInDuration,
		InStepPercent:           DefaultInStepPercent,
		InStepColors:            append([]color.NRGBA(nil), DefaultInStepColors...),
		OutDuration:             DefaultOutDuration,
		KeepDeterminateProgress: true,
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	cp.StrokeColors = append([]color.NRGBA(nil), c.StrokeColors...)
	cp.InStepColors = append([]color.NRGBA(nil), c.InStepColors...)
	return &cp
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.Padding < 0 {
		return invalid("padding", "must be non-negative")
	}
	if c.StrokeSize < 0 {
		return invalid("strokeSize", "must be non-negative")
	}
	if len(c.StrokeColors) == 0 {
		return invalid("strokeColors", "must contain at least one color")
	}
	angles := []struct {
		field string
		value float64
	}{
		{"initialAngle", c.InitialAngle},
		{"maxSweepAngle", c.MaxSweepAngle},
		{"minSweepAngle", c.MinSweepAngle},
		{"inStepPercent", c.InStepPercent},
	}
	for _, a := range angles {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return invalid(a.field, "must be a finite number")
		}
	}
	if c.MinSweepAngle > c.MaxSweepAngle {
		return invalid("minSweepAngle", "must not exceed maxSweepAngle (%g > %g)", c.MinSweepAngle, c.MaxSweepAngle)
	}

	durations := []struct {
		field string
		value time.Duration
	}{
		{"rotateDuration", c.RotateDuration},
		{"transformDuration", c.TransformDuration},
		{"keepDuration", c.KeepDuration},
		{"inAnimDuration", c.InDuration},
		{"outAnimDuration", c.OutDuration},
	}
	for _, d := range durations {
		if d.value < 0 {
			return invalid(d.field, "must be non-negative")
		}
	}

	if c.InDuration > 0 && (c.InStepPercent <= 0 || c.InStepPercent > 1) {
		return invalid("inStepPercent", "must be in (0, 1] when the entrance animation is enabled")
	}
	if c.TransformCurve == nil {
		return invalid("transformCurve", "must be set")
	}
	if c.Mode != ModeDeterminate && c.Mode != ModeIndeterminate {
		return invalid("mode", "must be determinate or indeterminate")
	}

	return nil
}
