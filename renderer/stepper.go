package renderer

import "github.com/pthm-cable/fluidgrid/engine"

// Stepper is the run loop a live view drives.
type Stepper interface {
	// Step advances one tick. done reports that the tick budget is spent.
	Step() (done bool, err error)
	Frame() engine.Frame
	Ticks() int64
	// RecordFrame marks a drawn frame for FPS reporting.
	RecordFrame()
}
