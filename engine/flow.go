package engine

import (
	"github.com/pthm-cable/fluidgrid/field"
	"github.com/pthm-cable/fluidgrid/numeric"
)

// cell is a grid coordinate; noCell marks "no terminal cell".
type cell struct{ x, y int }

var noCell = cell{-1, -1}

type flowFrame[F any] struct {
	x, y    int
	lim     F
	ret     F
	dir     int
	waiting bool
}

type flowResult[F any] struct {
	t   F
	ok  bool
	end cell
}

// propagateFlows clears last tick's flow and repeats full sweeps of
// augmenting searches until a sweep pushes nothing.
func (e *Engine[P, V, F]) propagateFlows() {
	g := e.g
	g.Flow.Clear()
	for {
		e.ut += 2
		e.stats.FlowPasses++
		progress := false
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				if g.IsWall(x, y) || g.LastUse(x, y) == e.ut {
					continue
				}
				if r := e.propagateFlow(x, y, e.flowOne); r.t.Sign() > 0 {
					progress = true
				}
			}
		}
		if !progress {
			return
		}
	}
}

// propagateFlow runs a depth-first search from (x, y) for an edge path with
// spare capacity that closes on a cell still in progress, pushing at most
// lim along it. Cells are marked ut-1 while on the search path and ut once
// finished. A path that closes on its own origin does not count as success.
func (e *Engine[P, V, F]) propagateFlow(x, y int, lim F) flowResult[F] {
	g := e.g
	stack := append(e.flowStack[:0], e.enterFlow(x, y, lim))
	var res flowResult[F]

outer:
	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]

		if f.waiting {
			f.waiting = false
			f.ret = f.ret.Add(res.t)
			if res.ok {
				g.Flow.AddAt(f.x, f.y, f.dir, res.t)
				g.SetLastUse(f.x, f.y, e.ut)
				res.ok = res.end != (cell{f.x, f.y})
				stack = stack[:top]
				continue
			}
			f.dir++
		}

		for ; f.dir < field.NumDirs; f.dir++ {
			nx, ny := neighbor(f.x, f.y, f.dir)
			if g.IsWall(nx, ny) || g.LastUse(nx, ny) >= e.ut {
				continue
			}
			capacity := numeric.Convert(e.ff, *g.Velocity.At(f.x, f.y, f.dir))
			spare := capacity.Sub(*g.Flow.At(f.x, f.y, f.dir))
			if spare.Cmp(e.flowTol) <= 0 {
				continue
			}
			vp := numeric.Min(f.lim, spare)
			if g.LastUse(nx, ny) == e.ut-1 {
				g.Flow.AddAt(f.x, f.y, f.dir, vp)
				g.SetLastUse(f.x, f.y, e.ut)
				res = flowResult[F]{t: vp, ok: true, end: cell{nx, ny}}
				stack = stack[:top]
				continue outer
			}
			f.waiting = true
			stack = append(stack, e.enterFlow(nx, ny, vp))
			continue outer
		}

		g.SetLastUse(f.x, f.y, e.ut)
		res = flowResult[F]{t: f.ret, end: noCell}
		stack = stack[:top]
	}

	e.flowStack = stack
	return res
}

func (e *Engine[P, V, F]) enterFlow(x, y int, lim F) flowFrame[F] {
	e.g.SetLastUse(x, y, e.ut-1)
	return flowFrame[F]{x: x, y: y, lim: lim, ret: e.ff.Zero()}
}
