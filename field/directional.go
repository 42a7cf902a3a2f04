// Package field stores one scalar per orthogonal neighbor direction for every
// cell of a rectangular grid.
package field

import (
	"fmt"

	"github.com/pthm-cable/fluidgrid/numeric"
)

// NumDirs is the number of modeled directions.
const NumDirs = 4

// Deltas lists the unit offsets (dx, dy) in slot order: up, down, left, right.
// y grows downward.
var Deltas = [NumDirs][2]int{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}

// Slot maps a unit offset to its slot index. It panics on diagonals and zero.
func Slot(dx, dy int) int {
	switch {
	case dx == 0 && dy == -1:
		return 0
	case dx == 0 && dy == 1:
		return 1
	case dx == -1 && dy == 0:
		return 2
	case dx == 1 && dy == 0:
		return 3
	}
	panic(fmt.Sprintf("field: (%d,%d) is not an orthogonal unit direction", dx, dy))
}

// Opposite returns the slot pointing the other way.
func Opposite(slot int) int {
	return slot ^ 1
}

// Directional holds NumDirs values per cell in row-major order.
type Directional[T numeric.Number[T]] struct {
	W, H int
	zero T
	v    [][NumDirs]T
}

// New allocates a w×h field with every slot set to zero.
func New[T numeric.Number[T]](w, h int, zero T) *Directional[T] {
	f := &Directional[T]{W: w, H: h, zero: zero, v: make([][NumDirs]T, w*h)}
	f.Clear()
	return f
}

// Get returns the slot for direction (dx, dy) of cell (x, y).
func (f *Directional[T]) Get(x, y, dx, dy int) *T {
	return &f.v[y*f.W+x][Slot(dx, dy)]
}

// At returns slot s of cell (x, y).
func (f *Directional[T]) At(x, y, s int) *T {
	return &f.v[y*f.W+x][s]
}

// Add accumulates delta into the slot and returns the new value.
func (f *Directional[T]) Add(x, y, dx, dy int, delta T) T {
	p := f.Get(x, y, dx, dy)
	*p = (*p).Add(delta)
	return *p
}

// AddAt is Add addressed by slot.
func (f *Directional[T]) AddAt(x, y, s int, delta T) T {
	p := f.At(x, y, s)
	*p = (*p).Add(delta)
	return *p
}

// Vector returns all slots of cell (x, y).
func (f *Directional[T]) Vector(x, y int) *[NumDirs]T {
	return &f.v[y*f.W+x]
}

// Clear resets every slot of every cell to zero.
func (f *Directional[T]) Clear() {
	for i := range f.v {
		for s := range f.v[i] {
			f.v[i][s] = f.zero
		}
	}
}
