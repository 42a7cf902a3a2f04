package engine

import (
	"github.com/pthm-cable/fluidgrid/field"
)

type moveFrame struct {
	x, y    int
	first   bool
	waiting bool
	// target of the most recent draw
	nx, ny int
}

type stopFrame struct {
	x, y int
	dir  int
}

// displace gives every unvisited open cell one chance to move along its
// outbound velocity. Cells that do not move are stopped, which cascades into
// the neighbors that only received velocity from them.
func (e *Engine[P, V, F]) displace() error {
	g := e.g
	e.ut += 2
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.IsWall(x, y) || g.LastUse(x, y) == e.ut {
				continue
			}
			if e.random01().Cmp(e.moveProb(x, y)) < 0 {
				e.stats.MoveAttempts++
				moved, err := e.propagateMove(x, y)
				if err != nil {
					return err
				}
				if moved {
					e.stats.Moves++
					e.stats.Displaced = true
				}
			} else {
				e.propagateStop(x, y, true)
			}
		}
	}
	return nil
}

// moveProb sums the non-negative outbound velocity toward open neighbors not
// finished in this sweep.
func (e *Engine[P, V, F]) moveProb(x, y int) V {
	g := e.g
	sum := e.vf.Zero()
	for dir := 0; dir < field.NumDirs; dir++ {
		nx, ny := neighbor(x, y, dir)
		if g.IsWall(nx, ny) || g.LastUse(nx, ny) == e.ut {
			continue
		}
		if v := *g.Velocity.At(x, y, dir); v.Sign() >= 0 {
			sum = sum.Add(v)
		}
	}
	return sum
}

// propagateMove tries to extend a chain of displacements from (x, y), picking
// directions at random weighted by outbound velocity. The chain succeeds when
// it reaches the cell it started from; every cell on a successful chain after
// the first swaps with its chosen neighbor while the chain unwinds.
func (e *Engine[P, V, F]) propagateMove(x, y int) (bool, error) {
	g := e.g
	stack := append(e.moveStack[:0], e.enterMove(x, y, true))
	var ret bool

outer:
	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]

		if f.waiting {
			f.waiting = false
			if ret {
				e.finishMove(f, true)
				stack = stack[:top]
				continue
			}
		}

		for {
			dir, ok, err := e.drawDirection(f.x, f.y)
			if err != nil {
				e.moveStack = stack[:0]
				return false, err
			}
			if !ok {
				ret = false
				break
			}
			f.nx, f.ny = neighbor(f.x, f.y, dir)
			if g.LastUse(f.nx, f.ny) == e.ut-1 {
				ret = true
				break
			}
			f.waiting = true
			stack = append(stack, e.enterMove(f.nx, f.ny, false))
			continue outer
		}

		e.finishMove(f, ret)
		stack = stack[:top]
	}

	e.moveStack = stack
	return ret, nil
}

func (e *Engine[P, V, F]) enterMove(x, y int, first bool) moveFrame {
	mark := e.ut
	if first {
		mark--
	}
	e.g.SetLastUse(x, y, mark)
	return moveFrame{x: x, y: y, first: first, nx: -1, ny: -1}
}

// finishMove marks the cell done, stops the neighbors that were pushing into
// it, and commits the swap for non-initial cells of a successful chain.
func (e *Engine[P, V, F]) finishMove(f *moveFrame, ret bool) {
	g := e.g
	g.SetLastUse(f.x, f.y, e.ut)
	for dir := 0; dir < field.NumDirs; dir++ {
		nx, ny := neighbor(f.x, f.y, dir)
		if g.IsWall(nx, ny) || g.LastUse(nx, ny) >= e.ut-1 {
			continue
		}
		if v := *g.Velocity.At(f.x, f.y, dir); v.Sign() < 0 {
			e.propagateStop(nx, ny, false)
		}
	}
	if ret && !f.first {
		g.SwapCells(f.x, f.y, f.nx, f.ny)
	}
}

// drawDirection picks an outbound direction of (x, y) with probability
// proportional to its velocity. ok is false when no direction has weight.
func (e *Engine[P, V, F]) drawDirection(x, y int) (int, bool, error) {
	g := e.g
	var tres [field.NumDirs]V
	sum := e.vf.Zero()
	for dir := 0; dir < field.NumDirs; dir++ {
		nx, ny := neighbor(x, y, dir)
		if !g.IsWall(nx, ny) && g.LastUse(nx, ny) != e.ut {
			if v := *g.Velocity.At(x, y, dir); v.Sign() >= 0 {
				sum = sum.Add(v)
			}
		}
		tres[dir] = sum
	}
	if sum.Sign() == 0 {
		return 0, false, nil
	}

	p := e.random01().Mul(sum)
	dir := 0
	for dir < field.NumDirs && tres[dir].Cmp(p) <= 0 {
		dir++
	}
	if dir == field.NumDirs {
		// A draw of exactly 1 lands past the table; take the last weighted entry.
		for dir = field.NumDirs - 1; dir > 0; dir-- {
			if tres[dir].Cmp(tres[dir-1]) != 0 {
				break
			}
		}
	}

	nx, ny := neighbor(x, y, dir)
	if v := *g.Velocity.At(x, y, dir); v.Sign() <= 0 || g.IsWall(nx, ny) || g.LastUse(nx, ny) >= e.ut {
		return 0, false, invariantf("drew direction %d with velocity %v at (%d,%d)", dir, v, x, y)
	}
	return dir, true, nil
}

// propagateStop finishes (x, y) without moving it. Unless forced it first
// checks that no unvisited open neighbor still receives velocity from it.
// Finishing cascades into the open neighbors this cell does not push into.
func (e *Engine[P, V, F]) propagateStop(x, y int, force bool) {
	if !e.enterStop(x, y, force) {
		return
	}
	g := e.g
	stack := append(e.stopStack[:0], stopFrame{x: x, y: y})
	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]
		if f.dir == field.NumDirs {
			stack = stack[:top]
			continue
		}
		dir := f.dir
		f.dir++
		nx, ny := neighbor(f.x, f.y, dir)
		if g.IsWall(nx, ny) || g.LastUse(nx, ny) == e.ut || (*g.Velocity.At(f.x, f.y, dir)).Sign() > 0 {
			continue
		}
		if e.enterStop(nx, ny, false) {
			stack = append(stack, stopFrame{x: nx, y: ny})
		}
	}
	e.stopStack = stack
}

func (e *Engine[P, V, F]) enterStop(x, y int, force bool) bool {
	g := e.g
	if !force {
		for dir := 0; dir < field.NumDirs; dir++ {
			nx, ny := neighbor(x, y, dir)
			if g.IsWall(nx, ny) || g.LastUse(nx, ny) >= e.ut-1 {
				continue
			}
			if (*g.Velocity.At(x, y, dir)).Sign() > 0 {
				return false
			}
		}
	}
	g.SetLastUse(x, y, e.ut)
	return true
}
