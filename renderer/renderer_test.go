package renderer

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/engine"
)

func testFrame() engine.Frame {
	return engine.Frame{
		Tick:   7,
		Width:  4,
		Height: 3,
		Cells:  []byte("#####.x#####"),
	}
}

func TestTextWritesRows(t *testing.T) {
	var buf bytes.Buffer
	tw := NewText(&buf)
	if err := tw.Frame(testFrame()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	want := "####\n#.x#\n####\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTerminalDrawsCells(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(20, 5)

	var palette [256]config.RGB
	palette['.'] = config.RGB{R: 0, G: 0, B: 255}
	term := NewTerminal(screen, &palette)
	if err := term.Frame(testFrame()); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '#'},
		{1, 1, '.'},
		{2, 1, 'x'},
		{3, 2, '#'},
		{0, 3, 't'}, // status line under the grid
	}
	for _, tt := range tests {
		got, _, _, _ := screen.GetContent(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}

	_, _, style, _ := screen.GetContent(1, 1)
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("fluid foreground = %v, want blue", fg)
	}
}
