package renderer

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/engine"
)

// Terminal draws frames into a tcell screen, one character per cell, with a
// status line under the grid.
type Terminal struct {
	screen tcell.Screen
	styles [256]tcell.Style
	status tcell.Style
}

// OpenTerminal initializes the controlling terminal.
func OpenTerminal(palette *[256]config.RGB) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return NewTerminal(screen, palette), nil
}

// NewTerminal wraps an initialized screen.
func NewTerminal(screen tcell.Screen, palette *[256]config.RGB) *Terminal {
	t := &Terminal{
		screen: screen,
		status: tcell.StyleDefault.Foreground(tcell.ColorSilver),
	}
	for i, c := range palette {
		col := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
		t.styles[i] = tcell.StyleDefault.Foreground(col)
	}
	// Walls are drawn as solid blocks.
	t.styles['#'] = t.styles['#'].Background(t.fg('#'))
	return t
}

func (t *Terminal) fg(code byte) tcell.Color {
	fg, _, _ := t.styles[code].Decompose()
	return fg
}

// Frame implements engine.Observer.
func (t *Terminal) Frame(f engine.Frame) error {
	t.screen.Clear()
	for y := 0; y < f.Height; y++ {
		for x, code := range f.Row(y) {
			t.screen.SetContent(x, y, rune(code), nil, t.styles[code])
		}
	}
	status := fmt.Sprintf("tick %d  (q to quit)", f.Tick)
	for i, r := range status {
		t.screen.SetContent(i, f.Height, r, nil, t.status)
	}
	t.screen.Show()
	return nil
}

// Watch blocks reading input until the user quits or the screen is closed.
// cancel is called on q, Esc or Ctrl-C.
func (t *Terminal) Watch(ctx context.Context, cancel context.CancelFunc) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				cancel()
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
