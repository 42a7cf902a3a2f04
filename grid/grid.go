// Package grid holds the per-cell state of a fluid simulation: material codes,
// pressure, velocity capacity, achieved flow and visitation marks.
package grid

import (
	"fmt"

	"github.com/pthm-cable/fluidgrid/field"
	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
)

// Grid is a height×width cell grid. Coordinates are (x, y) with x the column
// and y the row; cells outside the rectangle read as walls.
type Grid[P numeric.Number[P], V numeric.Number[V], F numeric.Number[F]] struct {
	W, H int

	Velocity *field.Directional[V]
	Flow     *field.Directional[F]

	material []byte
	p        []P
	oldP     []P
	lastUse  []int64
	dirs     []int64

	rho [256]P
	g   V

	pf numeric.Format[P]
	vf numeric.Format[V]
	ff numeric.Format[F]
}

// New builds a grid from s. Pressure and velocity start at zero.
func New[P numeric.Number[P], V numeric.Number[V], F numeric.Number[F]](
	s *scene.Scene,
	pf numeric.Format[P],
	vf numeric.Format[V],
	ff numeric.Format[F],
) (*Grid[P, V, F], error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	w, h := s.Width, s.Height
	g := &Grid[P, V, F]{
		W:        w,
		H:        h,
		Velocity: field.New(w, h, vf.Zero()),
		Flow:     field.New(w, h, ff.Zero()),
		material: make([]byte, w*h),
		p:        make([]P, w*h),
		oldP:     make([]P, w*h),
		lastUse:  make([]int64, w*h),
		dirs:     make([]int64, w*h),
		g:        vf.FromFloat64(s.G),
		pf:       pf,
		vf:       vf,
		ff:       ff,
	}
	numeric.Fill(g.p, pf.Zero())
	numeric.Fill(g.oldP, pf.Zero())
	for code, d := range s.Densities {
		g.rho[code] = pf.FromFloat64(d)
	}
	for y, row := range s.Field {
		copy(g.material[y*w:(y+1)*w], row)
	}
	g.countDirs()
	return g, nil
}

// countDirs caches the open-neighbor count of every open cell. Walls never
// move, so the count stays valid when materials are swapped.
func (g *Grid[P, V, F]) countDirs() {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.IsWall(x, y) {
				continue
			}
			var n int64
			for _, d := range field.Deltas {
				if !g.IsWall(x+d[0], y+d[1]) {
					n++
				}
			}
			g.dirs[y*g.W+x] = n
		}
	}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid[P, V, F]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Material returns the code at (x, y), or scene.Wall outside the grid.
func (g *Grid[P, V, F]) Material(x, y int) byte {
	if !g.InBounds(x, y) {
		return scene.Wall
	}
	return g.material[y*g.W+x]
}

// SetMaterial overwrites the code at (x, y).
func (g *Grid[P, V, F]) SetMaterial(x, y int, code byte) {
	g.material[y*g.W+x] = code
}

// IsWall reports whether (x, y) is a wall, including the implicit border.
func (g *Grid[P, V, F]) IsWall(x, y int) bool {
	return g.Material(x, y) == scene.Wall
}

// Pressure returns the current pressure at (x, y).
func (g *Grid[P, V, F]) Pressure(x, y int) P { return g.p[y*g.W+x] }

// SetPressure overwrites the current pressure at (x, y).
func (g *Grid[P, V, F]) SetPressure(x, y int, v P) { g.p[y*g.W+x] = v }

// AddPressure accumulates into the current pressure at (x, y).
func (g *Grid[P, V, F]) AddPressure(x, y int, delta P) {
	i := y*g.W + x
	g.p[i] = g.p[i].Add(delta)
}

// OldPressure returns the pressure captured by the last SnapshotPressure.
func (g *Grid[P, V, F]) OldPressure(x, y int) P { return g.oldP[y*g.W+x] }

// SnapshotPressure copies current pressure into the previous-tick buffer.
func (g *Grid[P, V, F]) SnapshotPressure() { copy(g.oldP, g.p) }

// Density returns the density of a material code, zero when unconfigured.
func (g *Grid[P, V, F]) Density(code byte) P { return g.rho[code] }

// DensityAt returns the density of the material at (x, y).
func (g *Grid[P, V, F]) DensityAt(x, y int) P { return g.rho[g.Material(x, y)] }

// Gravity returns the gravitational constant.
func (g *Grid[P, V, F]) Gravity() V { return g.g }

// Dirs returns the open-neighbor count cached at construction.
func (g *Grid[P, V, F]) Dirs(x, y int) int64 { return g.dirs[y*g.W+x] }

// LastUse returns the sweep mark of (x, y).
func (g *Grid[P, V, F]) LastUse(x, y int) int64 { return g.lastUse[y*g.W+x] }

// SetLastUse marks (x, y) with sweep value v.
func (g *Grid[P, V, F]) SetLastUse(x, y int, v int64) { g.lastUse[y*g.W+x] = v }

// SwapCells exchanges material, pressure and all velocity slots of two cells.
// Flow, visitation marks and open-neighbor counts stay in place.
func (g *Grid[P, V, F]) SwapCells(ax, ay, bx, by int) {
	i, j := ay*g.W+ax, by*g.W+bx
	g.material[i], g.material[j] = g.material[j], g.material[i]
	g.p[i], g.p[j] = g.p[j], g.p[i]
	va, vb := g.Velocity.Vector(ax, ay), g.Velocity.Vector(bx, by)
	*va, *vb = *vb, *va
}

// Formats returns the value constructors the grid was built with.
func (g *Grid[P, V, F]) Formats() (numeric.Format[P], numeric.Format[V], numeric.Format[F]) {
	return g.pf, g.vf, g.ff
}

// Snapshot captures the grid as a scene: dimensions, gravity, the density
// table as stored, and a copy of the material rows.
func (g *Grid[P, V, F]) Snapshot() *scene.Scene {
	s := &scene.Scene{Height: g.H, Width: g.W, G: g.g.Float64()}
	for code, d := range g.rho {
		s.Densities[code] = d.Float64()
	}
	s.Field = g.Rows()
	return s
}

// Rows copies the material codes, one slice per row.
func (g *Grid[P, V, F]) Rows() [][]byte {
	rows := make([][]byte, g.H)
	for y := range rows {
		rows[y] = append([]byte(nil), g.material[y*g.W:(y+1)*g.W]...)
	}
	return rows
}

// Materials exposes the row-major material buffer for read-only rendering.
func (g *Grid[P, V, F]) Materials() []byte { return g.material }
