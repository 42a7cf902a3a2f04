package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/pthm-cable/fluidgrid/scene"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	s := &scene.Scene{
		Height: 3,
		Width:  4,
		G:      0.1,
		Field: [][]byte{
			[]byte("####"),
			[]byte("#. #"),
			[]byte("####"),
		},
	}
	s.Densities[' '] = 0.01
	s.Densities['.'] = 1000

	path, err := SaveSnapshot(s, tmpDir, 1200)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_1200.txt"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Height != s.Height || loaded.Width != s.Width {
		t.Errorf("size = %dx%d, want %dx%d", loaded.Height, loaded.Width, s.Height, s.Width)
	}
	if loaded.G != s.G {
		t.Errorf("G = %v, want %v", loaded.G, s.G)
	}
	if loaded.Densities != s.Densities {
		t.Error("density table mismatch")
	}
	if string(loaded.Field[1]) != "#. #" {
		t.Errorf("row 1 = %q, want %q", loaded.Field[1], "#. #")
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing snapshot")
	}
}
