// Package telemetry provides per-phase timing, windowed run statistics,
// bookmarks, snapshots and CSV output.
package telemetry

// TickSample is the per-tick engine activity fed to a Collector.
type TickSample struct {
	Tick         int64
	FlowPasses   int
	MoveAttempts int
	Moves        int
	Displaced    bool
	Snapshot     bool
}

// GridSample is the grid state sampled when a window is flushed.
type GridSample struct {
	Pressures     []float64 // one entry per open cell
	VelocityTotal float64
	FlowTotal     float64
}

// Collector accumulates tick samples within windows and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	// Counters for current window
	ticks          int
	flowPasses     int
	moveAttempts   int
	moves          int
	displacedTicks int
	snapshots      int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Record adds one tick to the current window.
func (c *Collector) Record(s TickSample) {
	c.ticks++
	c.flowPasses += s.FlowPasses
	c.moveAttempts += s.MoveAttempts
	c.moves += s.Moves
	if s.Displaced {
		c.displacedTicks++
	}
	if s.Snapshot {
		c.snapshots++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, grid GridSample) WindowStats {
	var avgPasses, moveRate float64
	if c.ticks > 0 {
		avgPasses = float64(c.flowPasses) / float64(c.ticks)
	}
	if c.moveAttempts > 0 {
		moveRate = float64(c.moves) / float64(c.moveAttempts)
	}

	ps := ComputePressureStats(grid.Pressures)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Ticks:           c.ticks,

		FlowPasses:     c.flowPasses,
		AvgFlowPasses:  avgPasses,
		MoveAttempts:   c.moveAttempts,
		Moves:          c.moves,
		MoveRate:       moveRate,
		DisplacedTicks: c.displacedTicks,
		Snapshots:      c.snapshots,

		OpenCells:     len(grid.Pressures),
		PressureMean:  ps.Mean,
		PressureStd:   ps.Std,
		PressureP10:   ps.P10,
		PressureP50:   ps.P50,
		PressureP90:   ps.P90,
		PressureMax:   ps.Max,
		VelocityTotal: grid.VelocityTotal,
		FlowTotal:     grid.FlowTotal,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.ticks = 0
	c.flowPasses = 0
	c.moveAttempts = 0
	c.moves = 0
	c.displacedTicks = 0
	c.snapshots = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
