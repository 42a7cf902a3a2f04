package engine

import (
	"github.com/pthm-cable/fluidgrid/field"
	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
)

const slotDown = 1

// applyGravity accelerates every open cell that has open space below it.
func (e *Engine[P, V, F]) applyGravity() {
	g := e.g
	gv := g.Gravity()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.IsWall(x, y) || g.IsWall(x, y+1) {
				continue
			}
			g.Velocity.AddAt(x, y, slotDown, gv)
		}
	}
}

// relaxPressure pushes pressure differences against last tick's pressure into
// velocity. Inbound velocity from the lower-pressure neighbor is consumed
// first; whatever force remains becomes outbound velocity and lowers this
// cell's pressure.
func (e *Engine[P, V, F]) relaxPressure() {
	g := e.g
	g.SnapshotPressure()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.IsWall(x, y) {
				continue
			}
			for dir := 0; dir < field.NumDirs; dir++ {
				nx, ny := neighbor(x, y, dir)
				if g.IsWall(nx, ny) {
					continue
				}
				own, other := g.OldPressure(x, y), g.OldPressure(nx, ny)
				if other.Cmp(own) >= 0 {
					continue
				}
				force := own.Sub(other)
				contr := g.Velocity.At(nx, ny, field.Opposite(dir))
				rhoN := g.DensityAt(nx, ny)
				held := numeric.Convert(e.pf, *contr).Mul(rhoN)
				if held.Cmp(force) >= 0 {
					*contr = (*contr).Sub(numeric.Convert(e.vf, force.Div(rhoN)))
					continue
				}
				force = force.Sub(held)
				*contr = e.vf.Zero()
				g.Velocity.AddAt(x, y, dir, numeric.Convert(e.vf, force.Div(g.DensityAt(x, y))))
				g.AddPressure(x, y, force.Div(e.pf.FromInt(g.Dirs(x, y))).Neg())
			}
		}
	}
}

// settle clamps every positive velocity to the flow actually achieved and
// turns the lost momentum into pressure on the receiving side.
func (e *Engine[P, V, F]) settle() error {
	g := e.g
	tol := e.vf.FromFloat64(1e-4)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.IsWall(x, y) {
				continue
			}
			for dir := 0; dir < field.NumDirs; dir++ {
				v := g.Velocity.At(x, y, dir)
				oldV := *v
				if oldV.Sign() <= 0 {
					continue
				}
				newV := numeric.Convert(e.vf, *g.Flow.At(x, y, dir))
				if newV.Cmp(oldV.Add(tol)) > 0 {
					return invariantf("flow %v exceeds capacity %v at (%d,%d) dir %d", newV, oldV, x, y, dir)
				}
				*v = newV

				force := numeric.Convert(e.pf, oldV.Sub(newV)).Mul(g.DensityAt(x, y))
				if g.Material(x, y) == scene.Light {
					force = force.Mul(e.damping)
				}
				tx, ty := x, y
				if nx, ny := neighbor(x, y, dir); !g.IsWall(nx, ny) {
					tx, ty = nx, ny
				}
				if n := g.Dirs(tx, ty); n > 0 {
					g.AddPressure(tx, ty, force.Div(e.pf.FromInt(n)))
				}
			}
		}
	}
	return nil
}
