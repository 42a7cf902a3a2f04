// Package renderer draws engine frames: plain text rows, a tcell terminal
// view and a raylib window.
package renderer

import (
	"bufio"
	"io"

	"github.com/pthm-cable/fluidgrid/engine"
)

// Text writes every frame as raw material rows, one line per row.
type Text struct {
	w *bufio.Writer
}

// NewText returns a text observer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: bufio.NewWriter(w)}
}

// Frame implements engine.Observer.
func (t *Text) Frame(f engine.Frame) error {
	for y := 0; y < f.Height; y++ {
		t.w.Write(f.Row(y))
		t.w.WriteByte('\n')
	}
	return t.w.Flush()
}
