package registry

import (
	"fmt"

	"github.com/pthm-cable/fluidgrid/engine"
	"github.com/pthm-cable/fluidgrid/grid"
	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
)

// Size is a grid size registered alongside the wildcard.
type Size struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

// Default registers every (pressure, velocity, flow) triple drawn from types,
// once for any size and once for each entry of sizes.
func Default(types []numeric.Spec, sizes []Size) (*Registry, error) {
	r := New()
	for _, p := range types {
		for _, v := range types {
			for _, f := range types {
				factory, err := NewFactory(p, v, f)
				if err != nil {
					return nil, err
				}
				k := Key{P: p, V: v, F: f}
				r.Register(k, factory)
				for _, sz := range sizes {
					k.Height, k.Width = sz.Height, sz.Width
					r.Register(k, sized(factory, sz))
				}
			}
		}
	}
	return r, nil
}

// sized restricts a factory to scenes of exactly one size.
func sized(f Factory, sz Size) Factory {
	return func(s *scene.Scene, opts engine.Options) (Simulation, error) {
		if s.Height != sz.Height || s.Width != sz.Width {
			return nil, fmt.Errorf("scene is %dx%d, factory built for %dx%d", s.Height, s.Width, sz.Height, sz.Width)
		}
		return f(s, opts)
	}
}

// NewFactory returns a factory instantiating the engine for the given
// representations.
func NewFactory(p, v, f numeric.Spec) (Factory, error) {
	switch p.Kind {
	case numeric.KindFloat:
		return withV[numeric.Float32](numeric.Float32Format{}, v, f)
	case numeric.KindDouble:
		return withV[numeric.Float64](numeric.Float64Format{}, v, f)
	}
	pf, err := numeric.NewFixedFormat(p)
	if err != nil {
		return nil, fmt.Errorf("pressure type: %w", err)
	}
	return withV[numeric.Fixed](pf, v, f)
}

func withV[P numeric.Number[P]](pf numeric.Format[P], v, f numeric.Spec) (Factory, error) {
	switch v.Kind {
	case numeric.KindFloat:
		return withF[P, numeric.Float32](pf, numeric.Float32Format{}, f)
	case numeric.KindDouble:
		return withF[P, numeric.Float64](pf, numeric.Float64Format{}, f)
	}
	vf, err := numeric.NewFixedFormat(v)
	if err != nil {
		return nil, fmt.Errorf("velocity type: %w", err)
	}
	return withF[P, numeric.Fixed](pf, vf, f)
}

func withF[P numeric.Number[P], V numeric.Number[V]](pf numeric.Format[P], vf numeric.Format[V], f numeric.Spec) (Factory, error) {
	switch f.Kind {
	case numeric.KindFloat:
		return factory[P, V, numeric.Float32](pf, vf, numeric.Float32Format{}), nil
	case numeric.KindDouble:
		return factory[P, V, numeric.Float64](pf, vf, numeric.Float64Format{}), nil
	}
	ff, err := numeric.NewFixedFormat(f)
	if err != nil {
		return nil, fmt.Errorf("flow type: %w", err)
	}
	return factory[P, V, numeric.Fixed](pf, vf, ff), nil
}

func factory[P numeric.Number[P], V numeric.Number[V], F numeric.Number[F]](
	pf numeric.Format[P],
	vf numeric.Format[V],
	ff numeric.Format[F],
) Factory {
	return func(s *scene.Scene, opts engine.Options) (Simulation, error) {
		g, err := grid.New(s, pf, vf, ff)
		if err != nil {
			return nil, err
		}
		return engine.New(g, opts), nil
	}
}
