// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Types     TypesConfig     `yaml:"types"`
	Run       RunConfig       `yaml:"run"`
	Registry  RegistryConfig  `yaml:"registry"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Render    RenderConfig    `yaml:"render"`
	Scenegen  scene.GenParams `yaml:"scenegen"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TypesConfig selects the numeric representation of each quantity.
// Accepted: FLOAT, DOUBLE, FIXED(N,K), FAST_FIXED(N,K).
type TypesConfig struct {
	Pressure string `yaml:"pressure"`
	Velocity string `yaml:"velocity"`
	Flow     string `yaml:"flow"`
}

// RunConfig holds per-run parameters.
type RunConfig struct {
	Seed           uint64 `yaml:"seed"`
	MaxTicks       int64  `yaml:"max_ticks"`       // 0 = 1,000,000
	SerializeEvery int64  `yaml:"serialize_every"` // Snapshot interval in ticks, 0 disables
	InFile         string `yaml:"in_file"`
	OutFile        string `yaml:"out_file"`
	OutputDir      string `yaml:"output_dir"` // CSV telemetry and snapshot archive, empty disables
}

// RegistryConfig lists the engine instantiations made available at start-up.
type RegistryConfig struct {
	Types []string     `yaml:"types"`
	Sizes []SizeConfig `yaml:"sizes"`
}

// SizeConfig is a grid size with its own registry entry.
type SizeConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

// TelemetryConfig holds stats and perf logging parameters.
type TelemetryConfig struct {
	PerfWindow      int   `yaml:"perf_window"`      // Ticks averaged by the perf collector
	StatsEvery      int64 `yaml:"stats_every"`      // Ticks per stats window
	BookmarkHistory int   `yaml:"bookmark_history"` // Windows kept by the bookmark detector
}

// RenderConfig holds live view settings.
type RenderConfig struct {
	CellSize      int               `yaml:"cell_size"`
	TargetFPS     int               `yaml:"target_fps"`
	TicksPerFrame int               `yaml:"ticks_per_frame"`
	Palette       map[string]string `yaml:"palette"` // material code -> hex color
	DefaultColor  string            `yaml:"default_color"`
}

// RGB is a parsed palette entry.
type RGB struct {
	R, G, B uint8
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Pressure      numeric.Spec
	Velocity      numeric.Spec
	Flow          numeric.Spec
	RegistryTypes []numeric.Spec
	Palette       [256]RGB // indexed by material code
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.ComputeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ComputeDerived recalculates values derived from the config. Call it again
// after overriding fields, e.g. from command-line flags.
func (c *Config) ComputeDerived() error {
	var err error
	if c.Derived.Pressure, err = numeric.ParseSpec(c.Types.Pressure); err != nil {
		return fmt.Errorf("types.pressure: %w", err)
	}
	if c.Derived.Velocity, err = numeric.ParseSpec(c.Types.Velocity); err != nil {
		return fmt.Errorf("types.velocity: %w", err)
	}
	if c.Derived.Flow, err = numeric.ParseSpec(c.Types.Flow); err != nil {
		return fmt.Errorf("types.flow: %w", err)
	}

	c.Derived.RegistryTypes = c.Derived.RegistryTypes[:0]
	for _, t := range c.Registry.Types {
		spec, err := numeric.ParseSpec(t)
		if err != nil {
			return fmt.Errorf("registry.types: %w", err)
		}
		c.Derived.RegistryTypes = append(c.Derived.RegistryTypes, spec)
	}

	fallback, err := parseColor(c.Render.DefaultColor)
	if err != nil {
		return fmt.Errorf("render.default_color: %w", err)
	}
	for i := range c.Derived.Palette {
		c.Derived.Palette[i] = fallback
	}
	for code, hex := range c.Render.Palette {
		if len(code) != 1 {
			return fmt.Errorf("render.palette: key %q must be a single character", code)
		}
		rgb, err := parseColor(hex)
		if err != nil {
			return fmt.Errorf("render.palette[%q]: %w", code, err)
		}
		c.Derived.Palette[code[0]] = rgb
	}

	if c.Render.TicksPerFrame < 1 {
		c.Render.TicksPerFrame = 1
	}
	return nil
}

func parseColor(hex string) (RGB, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MaxTicks returns the tick budget, substituting the default for 0.
func (c *Config) MaxTicks() int64 {
	if c.Run.MaxTicks <= 0 {
		return 1_000_000
	}
	return c.Run.MaxTicks
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
