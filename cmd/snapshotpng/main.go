//go:build raylib

// Snapshot renderer - draws a scene or snapshot file to a PNG for inspection.
//
// Usage: go run -tags raylib ./cmd/snapshotpng -in out/snapshot_100.txt -out frame.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/scene"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (palette and cell size)")
	inPath := flag.String("in", "", "Scene or snapshot file")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	cellSize := flag.Int("cell", 0, "Pixels per cell (0 = use config)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	cell := int32(cfg.Render.CellSize)
	if *cellSize > 0 {
		cell = int32(*cellSize)
	}

	s, err := scene.Load(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
		os.Exit(1)
	}
	width, height := int32(s.Width)*cell, int32(s.Height)*cell

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Snapshot Render")
	defer rl.CloseWindow()

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	for y, row := range s.Field {
		for x, code := range row {
			c := cfg.Derived.Palette[code]
			rl.DrawRectangle(int32(x)*cell, int32(y)*cell, cell, cell, rl.NewColor(c.R, c.G, c.B, 255))
		}
	}
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Snapshot rendered to: %s (%dx%d cells)\n", *outPath, s.Width, s.Height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
