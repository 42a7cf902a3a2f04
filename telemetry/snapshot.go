package telemetry

import (
	"fmt"
	"path/filepath"

	"github.com/pthm-cable/fluidgrid/scene"
)

// SaveSnapshot writes a grid snapshot into dir, named after its tick.
// Returns the filepath where it was saved.
func SaveSnapshot(s *scene.Scene, dir string, tick int64) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.txt", tick))
	if err := scene.Save(path, s); err != nil {
		return "", err
	}
	return path, nil
}

// LoadSnapshot reads a snapshot back as a scene, ready to resume from.
func LoadSnapshot(path string) (*scene.Scene, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return s, nil
}
