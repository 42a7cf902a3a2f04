// Package engine advances a fluid grid one tick at a time: gravity, pressure
// relaxation, capacity-constrained flow propagation, settling and randomized
// displacement.
package engine

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mathext/prng"

	"github.com/pthm-cable/fluidgrid/field"
	"github.com/pthm-cable/fluidgrid/grid"
	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
	"github.com/pthm-cable/fluidgrid/telemetry"
)

// DefaultSeed reproduces the reference generator stream.
const DefaultSeed = 1337

// ErrInvariant is returned by Tick when an internal consistency check fails.
// The grid is left in an unspecified state.
var ErrInvariant = errors.New("engine invariant violated")

// Frame is the material grid handed to observers. Cells is row-major and only
// valid for the duration of the call.
type Frame struct {
	Tick          int64
	Width, Height int
	Cells         []byte
}

// Row returns row y of the frame.
func (f Frame) Row(y int) []byte {
	return f.Cells[y*f.Width : (y+1)*f.Width]
}

// Observer receives the material grid after every tick in which cells moved.
type Observer interface {
	Frame(f Frame) error
}

// Sink persists periodic snapshots.
type Sink interface {
	WriteSnapshot(s *scene.Scene) error
}

// PhaseTimer is satisfied by telemetry.PerfCollector.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// TickStats summarizes the most recent tick.
type TickStats struct {
	Tick int64
	// FlowPasses counts outer sweeps of flow propagation.
	FlowPasses int
	// MoveAttempts counts cells whose draw fell below their move probability.
	MoveAttempts int
	// Moves counts attempts that found a chain.
	Moves     int
	Displaced bool
	// Snapshot is true when the sink was written this tick.
	Snapshot bool
}

// Options configures an Engine.
type Options struct {
	Seed     uint64
	Observer Observer
	Sink     Sink
	// SerializeEvery is the sink interval in ticks; 0 disables the sink.
	SerializeEvery int64
	Timer          PhaseTimer
}

// Engine owns a grid and mutates it exclusively. It is not safe for
// concurrent use.
type Engine[P numeric.Number[P], V numeric.Number[V], F numeric.Number[F]] struct {
	g  *grid.Grid[P, V, F]
	pf numeric.Format[P]
	vf numeric.Format[V]
	ff numeric.Format[F]

	rng *prng.MT19937
	ut  int64

	observer Observer
	sink     Sink
	interval int64
	curTick  int64
	timer    PhaseTimer

	tick  int64
	stats TickStats

	flowTol F
	flowOne F
	damping P

	flowStack []flowFrame[F]
	moveStack []moveFrame
	stopStack []stopFrame
}

// New wraps g in an engine.
func New[P numeric.Number[P], V numeric.Number[V], F numeric.Number[F]](g *grid.Grid[P, V, F], opts Options) *Engine[P, V, F] {
	pf, vf, ff := g.Formats()
	rng := prng.NewMT19937()
	rng.Seed(opts.Seed)
	return &Engine[P, V, F]{
		g:        g,
		pf:       pf,
		vf:       vf,
		ff:       ff,
		rng:      rng,
		observer: opts.Observer,
		sink:     opts.Sink,
		interval: opts.SerializeEvery,
		timer:    opts.Timer,
		flowTol:  ff.FromFloat64(1e-4),
		flowOne:  ff.FromInt(1),
		damping:  pf.FromFloat64(0.8),
	}
}

// Grid returns the grid being simulated.
func (e *Engine[P, V, F]) Grid() *grid.Grid[P, V, F] { return e.g }

// Ticks returns how many ticks have completed.
func (e *Engine[P, V, F]) Ticks() int64 { return e.tick }

// LastStats returns the summary of the most recent tick.
func (e *Engine[P, V, F]) LastStats() TickStats { return e.stats }

// Snapshot captures the current grid.
func (e *Engine[P, V, F]) Snapshot() *scene.Scene { return e.g.Snapshot() }

// Tick advances the simulation by one step.
func (e *Engine[P, V, F]) Tick() error {
	e.stats = TickStats{Tick: e.tick + 1}
	e.startTick()

	e.phase(telemetry.PhaseGravity)
	e.applyGravity()

	e.phase(telemetry.PhasePressure)
	e.relaxPressure()

	e.phase(telemetry.PhaseFlow)
	e.propagateFlows()

	e.phase(telemetry.PhaseSettle)
	if err := e.settle(); err != nil {
		e.endTick()
		return err
	}

	e.phase(telemetry.PhaseMove)
	if err := e.displace(); err != nil {
		e.endTick()
		return err
	}

	e.phase(telemetry.PhaseOutput)
	err := e.emit()
	e.endTick()
	e.tick++
	return err
}

func (e *Engine[P, V, F]) emit() error {
	if e.stats.Displaced && e.observer != nil {
		f := Frame{Tick: e.stats.Tick, Width: e.g.W, Height: e.g.H, Cells: e.g.Materials()}
		if err := e.observer.Frame(f); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
	}
	if e.sink != nil && e.interval > 0 {
		e.curTick++
		if e.curTick == e.interval {
			e.curTick = 0
			e.stats.Snapshot = true
			if err := e.sink.WriteSnapshot(e.g.Snapshot()); err != nil {
				return fmt.Errorf("writing snapshot: %w", err)
			}
		}
	}
	return nil
}

func (e *Engine[P, V, F]) startTick() {
	if e.timer != nil {
		e.timer.StartTick()
	}
}

func (e *Engine[P, V, F]) phase(name string) {
	if e.timer != nil {
		e.timer.StartPhase(name)
	}
}

func (e *Engine[P, V, F]) endTick() {
	if e.timer != nil {
		e.timer.EndTick()
	}
}

// random01 draws one generator word and maps it into the velocity type.
func (e *Engine[P, V, F]) random01() V {
	return e.vf.Random01(e.rng.Uint32())
}

func neighbor(x, y, dir int) (int, int) {
	d := field.Deltas[dir]
	return x + d[0], y + d[1]
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
