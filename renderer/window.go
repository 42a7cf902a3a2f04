//go:build raylib

package renderer

import (
	"context"
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/engine"
)

const panelHeight = 40

// Window is a raylib view of the grid with pause, step and speed controls.
type Window struct {
	cfg    config.RenderConfig
	colors [256]rl.Color

	frame    engine.Frame
	paused   bool
	tickOnce bool
	speed    float32
}

// NewWindow prepares a window; it is opened by Run.
func NewWindow(cfg config.RenderConfig, palette *[256]config.RGB) (*Window, error) {
	w := &Window{cfg: cfg, speed: float32(cfg.TicksPerFrame)}
	for i, c := range palette {
		w.colors[i] = rl.NewColor(c.R, c.G, c.B, 255)
	}
	return w, nil
}

// Frame implements engine.Observer by keeping a copy of the latest grid.
func (w *Window) Frame(f engine.Frame) error {
	w.frame.Tick, w.frame.Width, w.frame.Height = f.Tick, f.Width, f.Height
	w.frame.Cells = append(w.frame.Cells[:0], f.Cells...)
	return nil
}

// Run opens the window and drives s until the window closes, ctx is done or
// a tick fails.
func (w *Window) Run(ctx context.Context, s Stepper) error {
	w.Frame(s.Frame())
	cell := int32(w.cfg.CellSize)
	width := int32(w.frame.Width) * cell
	height := int32(w.frame.Height)*cell + panelHeight
	if width < 360 {
		width = 360
	}

	rl.InitWindow(width, height, "fluidgrid")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(w.cfg.TargetFPS))

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			w.paused = !w.paused
		}
		if rl.IsKeyPressed(rl.KeyPeriod) {
			w.tickOnce = true
		}

		steps := 0
		if !w.paused {
			steps = int(w.speed)
		} else if w.tickOnce {
			steps = 1
			w.tickOnce = false
		}
		for i := 0; i < steps; i++ {
			done, err := s.Step()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		w.drawGrid(cell)
		w.drawPanel(cell, s.Ticks())
		rl.EndDrawing()
		s.RecordFrame()
	}
	return nil
}

func (w *Window) drawGrid(cell int32) {
	for y := 0; y < w.frame.Height; y++ {
		for x, code := range w.frame.Row(y) {
			rl.DrawRectangle(int32(x)*cell, int32(y)*cell, cell, cell, w.colors[code])
		}
	}
}

func (w *Window) drawPanel(cell int32, ticks int64) {
	y := float32(int32(w.frame.Height) * cell)
	label := "Pause"
	if w.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: 8, Y: y + 6, Width: 80, Height: 28}, label) {
		w.paused = !w.paused
	}
	if gui.Button(rl.Rectangle{X: 96, Y: y + 6, Width: 60, Height: 28}, "Step") {
		w.tickOnce = true
	}
	w.speed = gui.SliderBar(
		rl.Rectangle{X: 210, Y: y + 10, Width: 120, Height: 20},
		"speed", fmt.Sprintf("%d", int(w.speed)),
		w.speed, 1, 50,
	)
	rl.DrawText(fmt.Sprintf("tick %d", ticks), 380, int32(y)+12, 16, rl.RayWhite)
}
