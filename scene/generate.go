package scene

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"
)

// GenParams controls procedural scene generation.
type GenParams struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Seed   int64   `yaml:"seed"`
	G      float64 `yaml:"g"`

	// NoiseScale is the noise frequency per cell.
	NoiseScale float64 `yaml:"noise_scale"`
	// WallThreshold turns interior cells into walls where normalized noise
	// exceeds it. 1 disables interior walls.
	WallThreshold float64 `yaml:"wall_threshold"`
	// FillRatio is the fraction of rows, from the top, filled with FillCode.
	FillRatio float64 `yaml:"fill_ratio"`

	FillCode       string  `yaml:"fill_code"`
	FillDensity    float64 `yaml:"fill_density"`
	BackgroundCode string  `yaml:"background_code"`
	BackgroundDens float64 `yaml:"background_density"`
}

// DefaultGenParams returns a small cave with water above air.
func DefaultGenParams() GenParams {
	return GenParams{
		Width:          84,
		Height:         36,
		Seed:           1337,
		G:              0.1,
		NoiseScale:     0.12,
		WallThreshold:  0.72,
		FillRatio:      0.4,
		FillCode:       ".",
		FillDensity:    1000,
		BackgroundCode: " ",
		BackgroundDens: 0.01,
	}
}

// Generate builds a bordered scene whose interior walls follow OpenSimplex
// noise. The same params always produce the same scene.
func Generate(p GenParams) (*Scene, error) {
	if p.Width < 3 || p.Height < 3 {
		return nil, fmt.Errorf("scene %dx%d too small, need at least 3x3", p.Height, p.Width)
	}
	if len(p.FillCode) != 1 || len(p.BackgroundCode) != 1 {
		return nil, fmt.Errorf("fill and background codes must be single bytes")
	}
	fill, bg := p.FillCode[0], p.BackgroundCode[0]
	if fill == Wall || bg == Wall {
		return nil, fmt.Errorf("fill and background codes must not be the wall code")
	}

	noise := opensimplex.NewNormalized(p.Seed)
	fillRows := int(float64(p.Height-2) * p.FillRatio)

	s := &Scene{Height: p.Height, Width: p.Width, G: p.G}
	s.Densities[fill] = p.FillDensity
	s.Densities[bg] = p.BackgroundDens
	s.Field = make([][]byte, p.Height)
	for y := 0; y < p.Height; y++ {
		row := make([]byte, p.Width)
		for x := 0; x < p.Width; x++ {
			switch {
			case x == 0 || y == 0 || x == p.Width-1 || y == p.Height-1:
				row[x] = Wall
			case noise.Eval2(float64(x)*p.NoiseScale, float64(y)*p.NoiseScale) > p.WallThreshold:
				row[x] = Wall
			case y <= fillRows:
				row[x] = fill
			default:
				row[x] = bg
			}
		}
		s.Field[y] = row
	}
	return s, nil
}
