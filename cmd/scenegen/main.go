// Command scenegen writes a procedurally generated scene file.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/scene"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	out := flag.String("out", "", "Output file (empty = stdout)")
	width := flag.Int("width", 0, "Grid width (0 = use config)")
	height := flag.Int("height", 0, "Grid height (0 = use config)")
	seed := flag.Int64("seed", 0, "Noise seed (0 = use config)")
	threshold := flag.Float64("wall-threshold", 0, "Interior wall threshold (0 = use config)")
	fill := flag.Float64("fill-ratio", -1, "Fraction of rows filled with fluid (-1 = use config)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	p := config.Cfg().Scenegen
	if *width > 0 {
		p.Width = *width
	}
	if *height > 0 {
		p.Height = *height
	}
	if *seed != 0 {
		p.Seed = *seed
	}
	if *threshold > 0 {
		p.WallThreshold = *threshold
	}
	if *fill >= 0 {
		p.FillRatio = *fill
	}

	s, err := scene.Generate(p)
	if err != nil {
		slog.Error("failed to generate scene", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		if err := scene.Write(os.Stdout, s); err != nil {
			slog.Error("failed to write scene", "error", err)
			os.Exit(1)
		}
		return
	}
	if err := scene.Save(*out, s); err != nil {
		slog.Error("failed to write scene", "error", err)
		os.Exit(1)
	}
	slog.Info("scene written", "path", *out, "width", s.Width, "height", s.Height, "seed", p.Seed)
}
