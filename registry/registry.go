// Package registry maps a requested numeric configuration and grid size to a
// factory that builds a concrete simulation.
package registry

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/fluidgrid/engine"
	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
	"github.com/pthm-cable/fluidgrid/telemetry"
)

// ErrUnsupportedConfiguration is returned when no factory matches a key,
// neither for the exact size nor for the size-agnostic entry.
var ErrUnsupportedConfiguration = errors.New("unsupported configuration")

// Simulation is the size- and type-erased view of an engine.
type Simulation interface {
	Tick() error
	Ticks() int64
	LastStats() engine.TickStats
	Snapshot() *scene.Scene
	Frame() engine.Frame
	Sample() telemetry.GridSample
}

// Key selects a factory. Height and Width of 0 form the wildcard entry.
type Key struct {
	P, V, F       numeric.Spec
	Height, Width int
}

// Wildcard returns k with its size cleared.
func (k Key) Wildcard() Key {
	k.Height, k.Width = 0, 0
	return k
}

func (k Key) String() string {
	size := "any"
	if k.Height != 0 || k.Width != 0 {
		size = fmt.Sprintf("%dx%d", k.Height, k.Width)
	}
	return fmt.Sprintf("p=%s v=%s vf=%s size=%s", k.P, k.V, k.F, size)
}

// Factory builds a simulation for a scene.
type Factory func(s *scene.Scene, opts engine.Options) (Simulation, error)

// Registry holds factories by key. The zero value is not usable; call New.
type Registry struct {
	factories map[Key]Factory
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[Key]Factory)}
}

// Register adds or replaces the factory for k.
func (r *Registry) Register(k Key, f Factory) {
	r.factories[k] = f
}

// Lookup returns the factory for k, falling back to the wildcard size.
func (r *Registry) Lookup(k Key) (Factory, error) {
	if f, ok := r.factories[k]; ok {
		return f, nil
	}
	if f, ok := r.factories[k.Wildcard()]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfiguration, k)
}

// Build resolves the factory for the scene's size and invokes it.
func (r *Registry) Build(p, v, f numeric.Spec, s *scene.Scene, opts engine.Options) (Simulation, error) {
	factory, err := r.Lookup(Key{P: p, V: v, F: f, Height: s.Height, Width: s.Width})
	if err != nil {
		return nil, err
	}
	return factory(s, opts)
}

// Len returns the number of registered keys.
func (r *Registry) Len() int { return len(r.factories) }
