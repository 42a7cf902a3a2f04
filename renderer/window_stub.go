//go:build !raylib

package renderer

import (
	"context"
	"errors"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/engine"
)

// ErrNoWindow is returned when the binary was built without the raylib tag.
var ErrNoWindow = errors.New("window view requires building with the 'raylib' tag")

// Window is a placeholder for builds without raylib.
type Window struct{}

// NewWindow always fails in builds without raylib.
func NewWindow(config.RenderConfig, *[256]config.RGB) (*Window, error) {
	return nil, ErrNoWindow
}

// Frame is a no-op placeholder.
func (w *Window) Frame(engine.Frame) error { return nil }

// Run always fails in builds without raylib.
func (w *Window) Run(context.Context, Stepper) error { return ErrNoWindow }
