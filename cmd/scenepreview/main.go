//go:build raylib

// Scene generator preview - interactive tuning of scenegen parameters.
//
// Usage: go run -tags raylib ./cmd/scenepreview -out scene.txt
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/scene"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewWidth = 600
	panelWidth   = windowWidth - previewWidth - 30
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	out := flag.String("out", "scene.txt", "File written by the Save button")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	defaults := cfg.Scenegen
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Scene Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	var (
		texture rl.Texture2D
		current *scene.Scene
		genErr  error
		status  string
	)
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			current, genErr = scene.Generate(params)
			if genErr == nil {
				if texture.ID != 0 {
					rl.UnloadTexture(texture)
				}
				texture = sceneTexture(current, &cfg.Derived.Palette)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Preview, scaled to fit while keeping cells square
		if current != nil {
			scale := float32(previewWidth) / float32(current.Width)
			if s := float32(windowHeight-80) / float32(current.Height); s < scale {
				scale = s
			}
			w, h := float32(current.Width)*scale, float32(current.Height)*scale
			rl.DrawTexturePro(
				texture,
				rl.Rectangle{X: 0, Y: 0, Width: float32(current.Width), Height: float32(current.Height)},
				rl.Rectangle{X: 10, Y: 10, Width: w, Height: h},
				rl.Vector2{X: 0, Y: 0},
				0,
				rl.White,
			)
			rl.DrawRectangleLines(10, 10, int32(w), int32(h), rl.DarkGray)
		}
		if genErr != nil {
			rl.DrawText(genErr.Error(), 15, windowHeight-50, 16, rl.Red)
		}
		rl.DrawText(status, 15, windowHeight-28, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Scene Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, format string, value, lo, hi float32) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			return v
		}

		if v := slider("Noise scale", "%.3f", float32(params.NoiseScale), 0.02, 0.5); v != float32(params.NoiseScale) {
			params.NoiseScale = float64(v)
			needsRegen = true
		}
		if v := slider("Wall threshold (1 = no interior walls)", "%.2f", float32(params.WallThreshold), 0.3, 1); v != float32(params.WallThreshold) {
			params.WallThreshold = float64(v)
			needsRegen = true
		}
		if v := slider("Fill ratio", "%.2f", float32(params.FillRatio), 0, 1); v != float32(params.FillRatio) {
			params.FillRatio = float64(v)
			needsRegen = true
		}
		if v := slider("Width", "%.0f", float32(params.Width), 8, 200); int(v) != params.Width {
			params.Width = int(v)
			needsRegen = true
		}
		if v := slider("Height", "%.0f", float32(params.Height), 6, 100); int(v) != params.Height {
			params.Height = int(v)
			needsRegen = true
		}
		if v := slider("Seed", "%.0f", float32(params.Seed), 0, 99999); int64(v) != params.Seed {
			params.Seed = int64(v)
			needsRegen = true
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Save") && current != nil {
			if err := scene.Save(*out, current); err != nil {
				status = err.Error()
			} else {
				status = "saved " + *out
			}
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
	if texture.ID != 0 {
		rl.UnloadTexture(texture)
	}
}

func yamlLines(p scene.GenParams) []string {
	return []string{
		"scenegen:",
		fmt.Sprintf("  width: %d", p.Width),
		fmt.Sprintf("  height: %d", p.Height),
		fmt.Sprintf("  seed: %d", p.Seed),
		fmt.Sprintf("  noise_scale: %.3f", p.NoiseScale),
		fmt.Sprintf("  wall_threshold: %.2f", p.WallThreshold),
		fmt.Sprintf("  fill_ratio: %.2f", p.FillRatio),
	}
}

// sceneTexture uploads one pixel per cell, colored by material.
func sceneTexture(s *scene.Scene, palette *[256]config.RGB) rl.Texture2D {
	img := rl.GenImageColor(s.Width, s.Height, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	pixels := make([]color.RGBA, 0, s.Width*s.Height)
	for _, row := range s.Field {
		for _, code := range row {
			c := palette[code]
			pixels = append(pixels, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	rl.UpdateTexture(texture, pixels)
	return texture
}
