package field

import (
	"testing"

	"github.com/pthm-cable/fluidgrid/numeric"
)

func TestSlotIsBijection(t *testing.T) {
	seen := map[int]bool{}
	for i, d := range Deltas {
		s := Slot(d[0], d[1])
		if s != i {
			t.Errorf("Slot(%d,%d) = %d, want %d", d[0], d[1], s, i)
		}
		if seen[s] {
			t.Errorf("slot %d used twice", s)
		}
		seen[s] = true

		o := Deltas[Opposite(s)]
		if o[0] != -d[0] || o[1] != -d[1] {
			t.Errorf("Opposite(%d) = %v, want %v", s, o, [2]int{-d[0], -d[1]})
		}
	}
}

func TestSlotPanicsOnDiagonal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for diagonal")
		}
	}()
	Slot(1, 1)
}

func TestGetAddClear(t *testing.T) {
	f := New[numeric.Float64](3, 2, 0)

	f.Add(1, 1, 0, 1, 2.5)
	f.Add(1, 1, 0, 1, 0.5)
	if got := *f.Get(1, 1, 0, 1); got != 3 {
		t.Errorf("down slot = %v, want 3", got)
	}
	if got := *f.Get(1, 1, 0, -1); got != 0 {
		t.Errorf("up slot = %v, want 0 (slots must be independent)", got)
	}
	if got := *f.Get(0, 1, 0, 1); got != 0 {
		t.Errorf("neighbor cell = %v, want 0", got)
	}

	*f.Get(2, 0, -1, 0) = 7
	if got := *f.At(2, 0, Slot(-1, 0)); got != 7 {
		t.Errorf("At = %v, want 7", got)
	}

	f.Clear()
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			for s := 0; s < NumDirs; s++ {
				if v := *f.At(x, y, s); v != 0 {
					t.Fatalf("(%d,%d)[%d] = %v after Clear", x, y, s, v)
				}
			}
		}
	}
}

func TestClearRestoresFormattedZero(t *testing.T) {
	ff, err := numeric.NewFixedFormat(numeric.MustParseSpec("FIXED(32,16)"))
	if err != nil {
		t.Fatal(err)
	}
	f := New(2, 2, ff.Zero())
	f.AddAt(0, 0, 3, ff.FromFloat64(1.5))
	f.Clear()

	v := *f.At(0, 0, 3)
	if v.Sign() != 0 || v.FracBits() != 16 {
		t.Errorf("cleared slot = %v (frac %d), want formatted zero", v, v.FracBits())
	}
}
