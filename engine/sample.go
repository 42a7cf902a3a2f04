package engine

import (
	"github.com/pthm-cable/fluidgrid/field"
	"github.com/pthm-cable/fluidgrid/telemetry"
)

// Frame returns the current material grid without waiting for a displacement.
func (e *Engine[P, V, F]) Frame() Frame {
	return Frame{Tick: e.tick, Width: e.g.W, Height: e.g.H, Cells: e.g.Materials()}
}

// Sample collects pressure of every open cell along with total positive
// velocity and total flow.
func (e *Engine[P, V, F]) Sample() telemetry.GridSample {
	g := e.g
	var s telemetry.GridSample
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.IsWall(x, y) {
				continue
			}
			s.Pressures = append(s.Pressures, g.Pressure(x, y).Float64())
			for d := 0; d < field.NumDirs; d++ {
				if v := *g.Velocity.At(x, y, d); v.Sign() > 0 {
					s.VelocityTotal += v.Float64()
				}
				s.FlowTotal += (*g.Flow.At(x, y, d)).Float64()
			}
		}
	}
	return s
}
