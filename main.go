package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/renderer"
	"github.com/pthm-cable/fluidgrid/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	inFile := flag.String("in-file", "", "Scene file to load (empty = config, then generated)")
	outFile := flag.String("out-file", "", "Snapshot file rewritten every -n-ticks ticks")
	nTicks := flag.Int64("n-ticks", 0, "Snapshot interval in ticks (0 = use config)")
	pType := flag.String("p-type", "", "Pressure type: FLOAT, DOUBLE, FIXED(N,K), FAST_FIXED(N,K)")
	vType := flag.String("v-type", "", "Velocity type")
	vfType := flag.String("vf-type", "", "Flow type")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshot archive")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFormat := flag.String("log-format", "json", "Log format: json or text")
	quiet := flag.Bool("quiet", false, "Do not print frames to stdout")
	tui := flag.Bool("tui", false, "Live terminal view")
	gui := flag.Bool("gui", false, "Live window view (requires the raylib build tag)")

	flag.Parse()

	// Frames own stdout in the default mode, so logs move to stderr.
	printFrames := !*quiet && !*tui && !*gui
	logOut := io.Writer(os.Stdout)
	if printFrames {
		logOut = os.Stderr
	}
	if *tui {
		logOut = io.Discard
	}
	setupLogger(logOut, *logFormat)

	if err := config.Init(*configPath); err != nil {
		fail("failed to load config", err)
	}
	cfg := config.Cfg()

	// CLI overrides
	override(&cfg.Run.InFile, *inFile)
	override(&cfg.Run.OutFile, *outFile)
	override(&cfg.Run.OutputDir, *outputDir)
	override(&cfg.Types.Pressure, *pType)
	override(&cfg.Types.Velocity, *vType)
	override(&cfg.Types.Flow, *vfType)
	if *nTicks > 0 {
		cfg.Run.SerializeEvery = *nTicks
	}
	if *seed != 0 {
		cfg.Run.Seed = *seed
	}
	if *maxTicks > 0 {
		cfg.Run.MaxTicks = *maxTicks
	}
	if err := cfg.ComputeDerived(); err != nil {
		fail("invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := sim.Options{LogStats: *logStats}
	var (
		term   *renderer.Terminal
		window *renderer.Window
		err    error
	)
	switch {
	case *gui:
		window, err = renderer.NewWindow(cfg.Render, &cfg.Derived.Palette)
		if err != nil {
			fail("failed to create window", err)
		}
		opts.Observer = window
	case *tui:
		term, err = renderer.OpenTerminal(&cfg.Derived.Palette)
		if err != nil {
			fail("failed to open terminal", err)
		}
		opts.Observer = term
	case printFrames:
		opts.Observer = renderer.NewText(os.Stdout)
	}

	run, err := sim.New(cfg, opts)
	if err != nil {
		closeTerminal(term)
		fail("failed to start simulation", err)
	}
	defer run.Close()

	switch {
	case window != nil:
		err = window.Run(ctx, run)
	case term != nil:
		ctx, cancel := context.WithCancel(ctx)
		go term.Watch(ctx, cancel)
		term.Frame(run.Frame())
		err = run.RunHeadless(ctx)
		cancel()
		closeTerminal(term)
	default:
		err = run.RunHeadless(ctx)
	}
	if err != nil {
		run.Close()
		fail("simulation failed", err)
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setupLogger(w io.Writer, format string) {
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, nil)
	} else {
		handler = slog.NewJSONHandler(w, nil)
	}
	slog.SetDefault(slog.New(handler))
}

func closeTerminal(term *renderer.Terminal) {
	if term == nil {
		return
	}
	term.Close()
	// Logging was discarded while the screen was up.
	setupLogger(os.Stderr, "text")
}

func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
