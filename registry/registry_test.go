package registry

import (
	"errors"
	"testing"

	"github.com/pthm-cable/fluidgrid/engine"
	"github.com/pthm-cable/fluidgrid/numeric"
	"github.com/pthm-cable/fluidgrid/scene"
)

var (
	specFloat  = numeric.MustParseSpec("FLOAT")
	specDouble = numeric.MustParseSpec("DOUBLE")
	specFixed  = numeric.MustParseSpec("FIXED(32,16)")
	specFast   = numeric.MustParseSpec("FAST_FIXED(13,7)")
)

func smallScene() *scene.Scene {
	s := &scene.Scene{Height: 3, Width: 4, G: 0.1}
	s.Densities['.'] = 1000
	s.Densities[' '] = 0.01
	s.Field = [][]byte{[]byte("####"), []byte("#. #"), []byte("####")}
	return s
}

func TestLookupFallsBackToWildcard(t *testing.T) {
	r := New()
	var hits []string
	r.Register(Key{P: specFixed, V: specFixed, F: specFixed}, func(*scene.Scene, engine.Options) (Simulation, error) {
		hits = append(hits, "wildcard")
		return nil, nil
	})
	r.Register(Key{P: specFixed, V: specFixed, F: specFixed, Height: 3, Width: 4}, func(*scene.Scene, engine.Options) (Simulation, error) {
		hits = append(hits, "exact")
		return nil, nil
	})

	for _, k := range []Key{
		{P: specFixed, V: specFixed, F: specFixed, Height: 3, Width: 4},
		{P: specFixed, V: specFixed, F: specFixed, Height: 10, Width: 10},
	} {
		f, err := r.Lookup(k)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", k, err)
		}
		f(nil, engine.Options{})
	}
	if len(hits) != 2 || hits[0] != "exact" || hits[1] != "wildcard" {
		t.Errorf("hits = %v, want [exact wildcard]", hits)
	}
}

func TestLookupUnsupported(t *testing.T) {
	r := New()
	r.Register(Key{P: specFixed, V: specFixed, F: specFixed, Height: 3, Width: 4}, nil)

	_, err := r.Lookup(Key{P: specFixed, V: specFixed, F: specFixed, Height: 5, Width: 5})
	if !errors.Is(err, ErrUnsupportedConfiguration) {
		t.Errorf("err = %v, want ErrUnsupportedConfiguration", err)
	}
	_, err = r.Lookup(Key{P: specDouble, V: specFixed, F: specFixed})
	if !errors.Is(err, ErrUnsupportedConfiguration) {
		t.Errorf("err = %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestDefaultCoversEveryTriple(t *testing.T) {
	types := []numeric.Spec{specFloat, specDouble, specFixed}
	r, err := Default(types, []Size{{Height: 3, Width: 4}})
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if r.Len() != 27*2 {
		t.Errorf("registered %d keys, want 54", r.Len())
	}

	for _, p := range types {
		for _, v := range types {
			for _, f := range types {
				sim, err := r.Build(p, v, f, smallScene(), engine.Options{Seed: engine.DefaultSeed})
				if err != nil {
					t.Fatalf("Build(%s,%s,%s): %v", p, v, f, err)
				}
				for i := 0; i < 3; i++ {
					if err := sim.Tick(); err != nil {
						t.Fatalf("Tick(%s,%s,%s): %v", p, v, f, err)
					}
				}
				if sim.Ticks() != 3 {
					t.Errorf("Ticks = %d, want 3", sim.Ticks())
				}
			}
		}
	}
}

func TestDefaultWithFastFixed(t *testing.T) {
	r, err := Default([]numeric.Spec{specFast}, nil)
	if err != nil {
		t.Fatal(err)
	}
	sim, err := r.Build(specFast, specFast, specFast, smallScene(), engine.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := sim.Snapshot().Width; got != 4 {
		t.Errorf("snapshot width = %d, want 4", got)
	}
}

func TestExactSizeFactoryRejectsOtherSizes(t *testing.T) {
	f, err := NewFactory(specDouble, specDouble, specDouble)
	if err != nil {
		t.Fatal(err)
	}
	_, err = sized(f, Size{Height: 9, Width: 9})(smallScene(), engine.Options{})
	if err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestNewFactoryRejectsBadSpec(t *testing.T) {
	bad := numeric.Spec{Kind: numeric.KindFixed, Bits: 12, Frac: 4}
	if _, err := NewFactory(specDouble, bad, specDouble); err == nil {
		t.Error("expected error for FIXED(12,4)")
	}
}
