package grid

import (
	"testing"

	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
)

func testScene(rows ...string) *scene.Scene {
	s := &scene.Scene{Height: len(rows), Width: len(rows[0]), G: 0.1}
	s.Densities[' '] = 0.01
	s.Densities['.'] = 1000
	for _, r := range rows {
		s.Field = append(s.Field, []byte(r))
	}
	return s
}

func newFloatGrid(t *testing.T, s *scene.Scene) *Grid[numeric.Float64, numeric.Float64, numeric.Float64] {
	t.Helper()
	g, err := New[numeric.Float64, numeric.Float64, numeric.Float64](s, numeric.Float64Format{}, numeric.Float64Format{}, numeric.Float64Format{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func TestImplicitWallBorder(t *testing.T) {
	g := newFloatGrid(t, testScene("  ", "  "))
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}} {
		if !g.IsWall(c[0], c[1]) {
			t.Errorf("(%d,%d) outside grid is not a wall", c[0], c[1])
		}
	}
	if g.IsWall(0, 0) {
		t.Error("open cell reads as wall")
	}
}

func TestDirsCountsOpenNeighbors(t *testing.T) {
	g := newFloatGrid(t, testScene(
		"#####",
		"#   #",
		"# # #",
		"#####",
	))
	tests := []struct {
		x, y int
		want int64
	}{
		{1, 1, 2},
		{2, 1, 2},
		{3, 2, 1},
		{0, 0, 0},
		{2, 2, 0},
	}
	for _, tt := range tests {
		if got := g.Dirs(tt.x, tt.y); got != tt.want {
			t.Errorf("Dirs(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDirsOnUnborderedGrid(t *testing.T) {
	g := newFloatGrid(t, testScene("   "))
	if got := g.Dirs(0, 0); got != 1 {
		t.Errorf("corner dirs = %d, want 1", got)
	}
	if got := g.Dirs(1, 0); got != 2 {
		t.Errorf("middle dirs = %d, want 2", got)
	}
}

func TestSwapCellsIsSelfInverse(t *testing.T) {
	g := newFloatGrid(t, testScene("#####", "#. x#", "#####"))
	g.SetPressure(1, 1, 3.5)
	g.SetPressure(3, 1, -2)
	for s := 0; s < 4; s++ {
		*g.Velocity.At(1, 1, s) = numeric.Float64(s + 1)
		*g.Velocity.At(3, 1, s) = numeric.Float64(-s)
	}
	*g.Flow.At(1, 1, 3) = 7

	g.SwapCells(1, 1, 3, 1)
	if g.Material(1, 1) != 'x' || g.Material(3, 1) != '.' {
		t.Fatalf("materials not swapped: %q %q", g.Material(1, 1), g.Material(3, 1))
	}
	if g.Pressure(1, 1) != -2 || g.Pressure(3, 1) != 3.5 {
		t.Errorf("pressure not swapped")
	}
	if *g.Velocity.At(3, 1, 2) != 3 {
		t.Errorf("velocity slot 2 after swap = %v, want 3", *g.Velocity.At(3, 1, 2))
	}
	if *g.Flow.At(1, 1, 3) != 7 {
		t.Error("flow moved with the swap")
	}

	g.SwapCells(1, 1, 3, 1)
	if g.Material(1, 1) != '.' || g.Material(3, 1) != 'x' {
		t.Error("double swap did not restore materials")
	}
	if g.Pressure(1, 1) != 3.5 || g.Pressure(3, 1) != -2 {
		t.Error("double swap did not restore pressure")
	}
	for s := 0; s < 4; s++ {
		if *g.Velocity.At(1, 1, s) != numeric.Float64(s+1) || *g.Velocity.At(3, 1, s) != numeric.Float64(-s) {
			t.Errorf("double swap did not restore velocity slot %d", s)
		}
	}
}

func TestUnconfiguredDensityIsZero(t *testing.T) {
	ff, err := numeric.NewFixedFormat(numeric.MustParseSpec("FIXED(32,16)"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := New[numeric.Fixed, numeric.Fixed, numeric.Fixed](testScene("#z#"), ff, ff, ff)
	if err != nil {
		t.Fatal(err)
	}
	d := g.DensityAt(1, 0)
	if d.Sign() != 0 || d.Raw() != 0 {
		t.Errorf("density of unconfigured code = %v, want exactly 0", d)
	}
	if g.Density('.').Float64() != 1000 {
		t.Errorf("density of '.' = %v, want 1000", g.Density('.'))
	}
}

func TestSnapshotCopiesState(t *testing.T) {
	s := testScene("####", "#. #", "####")
	g := newFloatGrid(t, s)
	snap := g.Snapshot()

	if snap.Height != 3 || snap.Width != 4 || snap.G != 0.1 {
		t.Errorf("header = %d %d %v", snap.Height, snap.Width, snap.G)
	}
	if snap.DensityCount() != 2 {
		t.Errorf("density count = %d, want 2", snap.DensityCount())
	}
	snap.Field[1][1] = 'Q'
	if g.Material(1, 1) != '.' {
		t.Error("snapshot shares rows with the grid")
	}
}

func TestNewRejectsMismatchedScene(t *testing.T) {
	s := testScene("###", "###")
	s.Height = 3
	if _, err := New[numeric.Float64, numeric.Float64, numeric.Float64](s, numeric.Float64Format{}, numeric.Float64Format{}, numeric.Float64Format{}); err == nil {
		t.Error("expected error for scene with missing rows")
	}
}
