package progress

import (
	"errors"
	"fmt"

	"circprog/internal/config"
)

// RunState is the lifecycle state of a Drawable.
type RunState int

const (
	Stopped RunState = iota
	Starting
	Started
	Running
	Stopping
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Started:
		return "started"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Phase is the sub-state of the indeterminate animation cycle.
type Phase int

const (
	// PhaseHidden is used only while the entrance animation runs.
	PhaseHidden Phase = iota - 1
	PhaseStretch
	PhaseKeepStretch
	PhaseShrink
	PhaseKeepShrink
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseStretch:
		return "stretch"
	case PhaseKeepStretch:
		return "keep_stretch"
	case PhaseShrink:
		return "shrink"
	case PhaseKeepShrink:
		return "keep_shrink"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// next returns the phase that follows p in the indeterminate cycle.
func (p Phase) next() Phase {
	switch p {
	case PhaseStretch:
		return PhaseKeepStretch
	case PhaseKeepStretch:
		return PhaseShrink
	case PhaseShrink:
		return PhaseKeepShrink
	default:
		return PhaseStretch
	}
}

// ErrInvalidMode is matched by errors returned from operations that the
// configured mode does not support.
var ErrInvalidMode = errors.New("operation not supported in this mode")

// ModeError reports an operation called in the wrong mode.
type ModeError struct {
	Op   string
	Mode config.Mode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("%s is not supported in %s mode", e.Op, e.Mode)
}

// Unwrap lets errors.Is match ErrInvalidMode.
func (e *ModeError) Unwrap() error {
	return ErrInvalidMode
}
