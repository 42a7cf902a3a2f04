// Package sim wires one simulation run: configuration, scene, registry
// lookup, snapshot sink, observers and telemetry.
package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/engine"
	"github.com/pthm-cable/fluidgrid/registry"
	"github.com/pthm-cable/fluidgrid/scene"
	"github.com/pthm-cable/fluidgrid/telemetry"
)

// Options holds per-run settings that do not live in the config file.
type Options struct {
	// Observer receives frames after every tick in which cells moved.
	Observer engine.Observer
	// LogStats logs window and perf stats through slog.
	LogStats bool
}

// Run is a single configured simulation.
type Run struct {
	cfg      *config.Config
	sim      registry.Simulation
	maxTicks int64
	logStats bool

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
}

// New loads the scene named by cfg, resolves the engine for the configured
// types and prepares telemetry. Close releases output files.
func New(cfg *config.Config, opts Options) (*Run, error) {
	s, err := loadScene(cfg)
	if err != nil {
		return nil, err
	}

	sizes := make([]registry.Size, len(cfg.Registry.Sizes))
	for i, sz := range cfg.Registry.Sizes {
		sizes[i] = registry.Size{Height: sz.Height, Width: sz.Width}
	}
	reg, err := registry.Default(cfg.Derived.RegistryTypes, sizes)
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}

	output, err := telemetry.NewOutputManager(cfg.Run.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	r := &Run{
		cfg:       cfg,
		maxTicks:  cfg.MaxTicks(),
		logStats:  opts.LogStats,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsEvery),
		bookmarks: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		output:    output,
	}

	eopts := engine.Options{
		Seed:           cfg.Run.Seed,
		Observer:       opts.Observer,
		SerializeEvery: cfg.Run.SerializeEvery,
		Timer:          r.perf,
	}
	if cfg.Run.OutFile != "" || cfg.Run.OutputDir != "" {
		eopts.Sink = &snapshotSink{
			outFile:    cfg.Run.OutFile,
			archiveDir: cfg.Run.OutputDir,
			ticks:      r.Ticks,
		}
	}

	r.sim, err = reg.Build(cfg.Derived.Pressure, cfg.Derived.Velocity, cfg.Derived.Flow, s, eopts)
	if err != nil {
		output.Close()
		return nil, err
	}
	return r, nil
}

func loadScene(cfg *config.Config) (*scene.Scene, error) {
	if cfg.Run.InFile == "" {
		slog.Info("no input scene, generating one",
			"width", cfg.Scenegen.Width,
			"height", cfg.Scenegen.Height,
			"seed", cfg.Scenegen.Seed,
		)
		return scene.Generate(cfg.Scenegen)
	}
	return scene.Load(cfg.Run.InFile)
}

// Step advances one tick and handles telemetry. done reports that the tick
// budget is spent.
func (r *Run) Step() (done bool, err error) {
	if r.sim.Ticks() >= r.maxTicks {
		return true, nil
	}
	if err := r.sim.Tick(); err != nil {
		return true, fmt.Errorf("tick %d: %w", r.sim.Ticks()+1, err)
	}

	st := r.sim.LastStats()
	r.collector.Record(telemetry.TickSample{
		Tick:         st.Tick,
		FlowPasses:   st.FlowPasses,
		MoveAttempts: st.MoveAttempts,
		Moves:        st.Moves,
		Displaced:    st.Displaced,
		Snapshot:     st.Snapshot,
	})
	if st.Snapshot {
		slog.Debug("snapshot written", "tick", st.Tick, "out_file", r.cfg.Run.OutFile)
	}
	r.flushTelemetry()

	return r.sim.Ticks() >= r.maxTicks, nil
}

// RunHeadless ticks until the budget is spent, a tick fails or ctx is done.
// Cancellation is only observed between ticks.
func (r *Run) RunHeadless(ctx context.Context) error {
	slog.Info("starting simulation",
		"p_type", r.cfg.Derived.Pressure.String(),
		"v_type", r.cfg.Derived.Velocity.String(),
		"vf_type", r.cfg.Derived.Flow.String(),
		"seed", r.cfg.Run.Seed,
		"max_ticks", r.maxTicks,
	)
	for {
		if ctx.Err() != nil {
			slog.Info("simulation stopped", "tick", r.sim.Ticks())
			return nil
		}
		done, err := r.Step()
		if err != nil {
			return err
		}
		if done {
			slog.Info("max ticks reached", "tick", r.sim.Ticks())
			return nil
		}
	}
}

// Ticks returns the number of completed ticks.
func (r *Run) Ticks() int64 { return r.sim.Ticks() }

// Frame returns the current material grid.
func (r *Run) Frame() engine.Frame { return r.sim.Frame() }

// RecordFrame records frame timing for live views.
func (r *Run) RecordFrame() { r.perf.RecordFrame() }

// Close flushes and closes telemetry output.
func (r *Run) Close() error {
	return r.output.Close()
}
