// Package scene holds the initial description of a simulation: the material
// grid, the density table and gravity. It reads and writes the plain-text
// scene format, which is also the snapshot format.
package scene

import (
	"errors"
	"fmt"
)

// Material codes with fixed meaning.
const (
	Wall  byte = '#'
	Light byte = '.'
)

// ErrSceneLoad matches every SceneLoadError with errors.Is.
var ErrSceneLoad = errors.New("scene load failed")

// SceneLoadError reports malformed or unreadable scene input.
type SceneLoadError struct {
	Path string
	Line int // 1-based, 0 when not tied to a line
	Err  error
}

func (e *SceneLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("scene %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("scene %s: %v", e.Path, e.Err)
}

func (e *SceneLoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrSceneLoad) true.
func (e *SceneLoadError) Is(target error) bool { return target == ErrSceneLoad }

// Scene is the value object handed to the grid at construction. It doubles as
// the snapshot of a running grid.
type Scene struct {
	Height int
	Width  int
	G      float64
	// Densities is indexed by material code; unlisted codes have density 0.
	Densities [256]float64
	// Field holds Height rows of Width material codes.
	Field [][]byte
}

// Validate checks that the field matches the declared dimensions.
func (s *Scene) Validate() error {
	if s.Height <= 0 || s.Width <= 0 {
		return fmt.Errorf("dimensions %dx%d must be positive", s.Height, s.Width)
	}
	if len(s.Field) != s.Height {
		return fmt.Errorf("have %d rows, want %d", len(s.Field), s.Height)
	}
	for i, row := range s.Field {
		if len(row) != s.Width {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), s.Width)
		}
	}
	return nil
}

// DensityCount returns how many codes have a non-zero density.
func (s *Scene) DensityCount() int {
	n := 0
	for _, d := range s.Densities {
		if d != 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Field = make([][]byte, len(s.Field))
	for i, row := range s.Field {
		c.Field[i] = append([]byte(nil), row...)
	}
	return &c
}

// Rows renders the field as one string per row.
func (s *Scene) Rows() []string {
	rows := make([]string, len(s.Field))
	for i, row := range s.Field {
		rows[i] = string(row)
	}
	return rows
}
