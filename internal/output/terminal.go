package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ClearScreen clears the terminal screen and moves cursor to top-left
func ClearScreen(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[2J\033[H")
}

// HideCursor hides the terminal cursor
func HideCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor
func ShowCursor(w io.Writer) {
	_, _ = fmt.Fprint(w, "\033[?25h")
}

// Screen redraws a view in place, as used by watch mode
type Screen struct {
	w io.Writer
}

// NewScreen hides the cursor on w until Close
func NewScreen(w io.Writer) *Screen {
	HideCursor(w)
	return &Screen{w: w}
}

// Redraw clears the screen and runs draw
func (s *Screen) Redraw(draw func(w io.Writer)) {
	ClearScreen(s.w)
	draw(s.w)
}

// Close restores the cursor
func (s *Screen) Close() {
	ShowCursor(s.w)
}

// InterruptContext returns a context cancelled on Ctrl+C or SIGTERM
func InterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
