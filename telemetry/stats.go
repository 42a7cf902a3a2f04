package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`
	Ticks           int   `csv:"ticks"`

	// Engine activity during window
	FlowPasses     int     `csv:"flow_passes"`
	AvgFlowPasses  float64 `csv:"avg_flow_passes"`
	MoveAttempts   int     `csv:"move_attempts"`
	Moves          int     `csv:"moves"`
	MoveRate       float64 `csv:"move_rate"`
	DisplacedTicks int     `csv:"displaced_ticks"`
	Snapshots      int     `csv:"snapshots"`

	// Grid state sampled at window end
	OpenCells     int     `csv:"open_cells"`
	PressureMean  float64 `csv:"pressure_mean"`
	PressureStd   float64 `csv:"pressure_std"`
	PressureP10   float64 `csv:"pressure_p10"`
	PressureP50   float64 `csv:"pressure_p50"`
	PressureP90   float64 `csv:"pressure_p90"`
	PressureMax   float64 `csv:"pressure_max"`
	VelocityTotal float64 `csv:"velocity_total"` // Sum of positive velocity slots
	FlowTotal     float64 `csv:"flow_total"`     // Sum of flow pushed last tick
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// PressureStats summarizes a pressure sample.
type PressureStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputePressureStats calculates mean, population std, percentiles and max.
func ComputePressureStats(values []float64) PressureStats {
	if len(values) == 0 {
		return PressureStats{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return PressureStats{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
		Max:  floats.Max(values),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("ticks", s.Ticks),
		slog.Int("flow_passes", s.FlowPasses),
		slog.Float64("avg_flow_passes", s.AvgFlowPasses),
		slog.Int("move_attempts", s.MoveAttempts),
		slog.Int("moves", s.Moves),
		slog.Float64("move_rate", s.MoveRate),
		slog.Int("displaced_ticks", s.DisplacedTicks),
		slog.Int("snapshots", s.Snapshots),
		slog.Int("open_cells", s.OpenCells),
		slog.Float64("pressure_mean", s.PressureMean),
		slog.Float64("pressure_std", s.PressureStd),
		slog.Float64("pressure_p50", s.PressureP50),
		slog.Float64("pressure_max", s.PressureMax),
		slog.Float64("velocity_total", s.VelocityTotal),
		slog.Float64("flow_total", s.FlowTotal),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"ticks", s.Ticks,
		"avg_flow_passes", s.AvgFlowPasses,
		"move_attempts", s.MoveAttempts,
		"moves", s.Moves,
		"move_rate", s.MoveRate,
		"displaced_ticks", s.DisplacedTicks,
		"snapshots", s.Snapshots,
		"open_cells", s.OpenCells,
		"pressure_mean", s.PressureMean,
		"pressure_std", s.PressureStd,
		"pressure_p10", s.PressureP10,
		"pressure_p50", s.PressureP50,
		"pressure_p90", s.PressureP90,
		"pressure_max", s.PressureMax,
		"velocity_total", s.VelocityTotal,
		"flow_total", s.FlowTotal,
	)
}
