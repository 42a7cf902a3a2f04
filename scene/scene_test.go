package scene

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = "4 6 0.1 2\n" +
	"  0.01\n" +
	". 1000\n" +
	"######\n" +
	"#....#\n" +
	"#    #\n" +
	"######\n"

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader(sample), "sample")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Height != 4 || s.Width != 6 {
		t.Errorf("size = %dx%d, want 4x6", s.Height, s.Width)
	}
	if s.G != 0.1 {
		t.Errorf("G = %v, want 0.1", s.G)
	}
	if s.Densities[' '] != 0.01 || s.Densities['.'] != 1000 {
		t.Errorf("densities = %v / %v", s.Densities[' '], s.Densities['.'])
	}
	if s.Densities['x'] != 0 {
		t.Errorf("unlisted code density = %v, want 0", s.Densities['x'])
	}
	if string(s.Field[1]) != "#....#" {
		t.Errorf("row 1 = %q", s.Field[1])
	}
}

func TestWriteRoundTrip(t *testing.T) {
	s, err := Parse(strings.NewReader(sample), "sample")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != sample {
		t.Errorf("Write output differs:\n got %q\nwant %q", buf.String(), sample)
	}

	back, err := Parse(&buf, "roundtrip")
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	if back.Densities != s.Densities || strings.Join(back.Rows(), "\n") != strings.Join(s.Rows(), "\n") {
		t.Error("round trip changed the scene")
	}
}

func TestWriteNumberFormat(t *testing.T) {
	s := &Scene{Height: 1, Width: 1, G: 1e6, Field: [][]byte{[]byte("#")}}
	s.Densities['a'] = 9.81
	s.Densities['b'] = 1e-5

	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatal(err)
	}
	want := "1 1 1e+06 2\na 9.81\nb 1e-05\n#\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"empty", "", 0},
		{"short header", "4 6 0.1\n", 1},
		{"bad height", "x 6 0.1 0\n", 1},
		{"bad density", "1 1 0.1 1\n. heavy\n#\n", 2},
		{"missing rows", "2 2 0.1 0\n##\n", 2},
		{"short row", "2 3 0.1 0\n###\n##\n", 3},
		{"zero size", "0 3 0.1 0\n", 1},
		{"huge height", "1000000000000000 1 0 0\n#\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in), "bad")
			if !errors.Is(err, ErrSceneLoad) {
				t.Fatalf("err = %v, want ErrSceneLoad", err)
			}
			var le *SceneLoadError
			if !errors.As(err, &le) {
				t.Fatalf("err %T is not *SceneLoadError", err)
			}
			if le.Line != tt.line {
				t.Errorf("line = %d, want %d", le.Line, tt.line)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrSceneLoad) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrSceneLoad wrapping ErrNotExist", err)
	}
}

func TestSaveLoad(t *testing.T) {
	s, _ := Parse(strings.NewReader(sample), "sample")
	path := filepath.Join(t.TempDir(), "out", "snap.txt")
	if err := Save(path, s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if back.Height != s.Height || string(back.Field[2]) != string(s.Field[2]) {
		t.Error("Save/Load changed the scene")
	}
}

func TestClone(t *testing.T) {
	s, _ := Parse(strings.NewReader(sample), "sample")
	c := s.Clone()
	c.Field[1][1] = 'X'
	if s.Field[1][1] == 'X' {
		t.Error("Clone shares rows with the original")
	}
}

func TestGenerate(t *testing.T) {
	p := DefaultGenParams()
	a, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("generated scene invalid: %v", err)
	}
	for x := 0; x < p.Width; x++ {
		if a.Field[0][x] != Wall || a.Field[p.Height-1][x] != Wall {
			t.Fatalf("top/bottom border open at x=%d", x)
		}
	}
	for y := 0; y < p.Height; y++ {
		if a.Field[y][0] != Wall || a.Field[y][p.Width-1] != Wall {
			t.Fatalf("side border open at y=%d", y)
		}
	}
	if a.Densities['.'] != p.FillDensity || a.Densities[' '] != p.BackgroundDens {
		t.Errorf("densities not taken from params")
	}

	b, _ := Generate(p)
	if strings.Join(a.Rows(), "\n") != strings.Join(b.Rows(), "\n") {
		t.Error("same seed produced different scenes")
	}

	p.WallThreshold = 0.5
	a, _ = Generate(p)
	p.Seed++
	c, _ := Generate(p)
	if strings.Join(a.Rows(), "\n") == strings.Join(c.Rows(), "\n") {
		t.Error("different seeds produced identical scenes")
	}
}

func TestGenerateRejectsBadParams(t *testing.T) {
	p := DefaultGenParams()
	p.FillCode = "#"
	if _, err := Generate(p); err == nil {
		t.Error("expected error for wall fill code")
	}
	p = DefaultGenParams()
	p.Width = 2
	if _, err := Generate(p); err == nil {
		t.Error("expected error for tiny scene")
	}
}
