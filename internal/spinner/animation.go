package spinner

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"circprog/internal/canvas"
	"circprog/internal/progress"
	"circprog/internal/surface"
)

// ANSI escape codes for cursor visibility, movement and line clearing
const (
	ansiEscape     = "\033["
	ansiHideCursor = ansiEscape + "?25l"
	ansiShowCursor = ansiEscape + "?25h"
	ansiResetColor = ansiEscape + "0m"
	ansiClearLine  = ansiEscape + "K"
	ansiCursorUp   = "A" // preceded by ansiEscape and a count
	carriageReturn = "\r"
)

// Animation defines how frames of a drawable reach the user.
// The Animator only handles timing and lifecycle; all output belongs to the
// Animation.
type Animation interface {
	// Start is called once before the drawable starts.
	// It should handle any setup (e.g., hiding the cursor).
	Start()

	// Stop is called once after the drawable has stopped.
	// It should handle any cleanup (e.g., showing the cursor).
	Stop()

	// Render draws the drawable's current frame.
	Render(d *progress.Drawable)
}

// Terminal is an Animation that redraws the indicator in place on a
// terminal, as a block of colored braille characters.
type Terminal struct {
	out      io.Writer
	canvas   *canvas.Canvas
	renderer *lipgloss.Renderer
	limiter  *rate.Limiter // nil means every redraw is written
	drawn    bool          // whether a frame is on screen
	frames   int
}

// NewTerminal creates a Terminal writing to out on a canvas of cols x rows
// braille characters. The renderer picks the color profile; nil means a
// renderer detected from out.
func NewTerminal(out io.Writer, cols, rows int, renderer *lipgloss.Renderer) *Terminal {
	if renderer == nil {
		renderer = lipgloss.NewRenderer(out)
	}
	return &Terminal{
		out:      out,
		canvas:   canvas.NewCells(cols, rows),
		renderer: renderer,
	}
}

// LimitRedraws caps the number of frames written per second. Redraws
// requested above the cap are dropped. A non-positive perSecond removes the
// cap.
func (t *Terminal) LimitRedraws(perSecond float64) {
	if perSecond <= 0 {
		t.limiter = nil
		return
	}
	t.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
}

// Start hides the cursor.
func (t *Terminal) Start() {
	fmt.Fprint(t.out, ansiHideCursor)
}

// Stop clears the last frame and shows the cursor.
func (t *Terminal) Stop() {
	if t.drawn {
		t.rewind()
		rows := t.canvas.CharHeight()
		for i := 0; i < rows; i++ {
			if i > 0 {
				fmt.Fprint(t.out, "\n")
			}
			fmt.Fprint(t.out, ansiClearLine)
		}
		t.rewind()
		t.drawn = false
	}
	fmt.Fprint(t.out, ansiResetColor+ansiShowCursor)
}

// Render draws the drawable's current frame over the previous one.
func (t *Terminal) Render(d *progress.Drawable) {
	if t.limiter != nil && !t.limiter.Allow() {
		return
	}
	t.canvas.Reset()
	d.Draw(t.canvas, surface.RectWH(float64(t.canvas.Width()), float64(t.canvas.Height())))

	if t.drawn {
		t.rewind()
	}
	fmt.Fprint(t.out, t.canvas.Styled(t.renderer))
	t.drawn = true
	t.frames++
}

// Frames returns the number of frames written so far.
func (t *Terminal) Frames() int {
	return t.frames
}

// Snapshot returns the last rendered frame without colors.
func (t *Terminal) Snapshot() string {
	return t.canvas.String()
}

// rewind moves the cursor back to the first column of the first row of the
// frame.
func (t *Terminal) rewind() {
	var sb strings.Builder
	if up := t.canvas.CharHeight() - 1; up > 0 {
		fmt.Fprintf(&sb, "%s%d%s", ansiEscape, up, ansiCursorUp)
	}
	sb.WriteString(carriageReturn)
	fmt.Fprint(t.out, sb.String())
}
