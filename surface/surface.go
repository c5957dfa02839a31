// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/window/gpu"
)

// Surface is a native window with a current GPU context.
type Surface interface {
	// Size returns the drawable size in pixels.
	Size() (width, height int)

	// MakeCurrent binds the surface's context to the calling thread.
	MakeCurrent()

	// Device returns the command interface of the surface's context. It
	// is created on first use; later calls return the same device.
	Device() (gpu.Device, error)

	// SwapBuffers presents the back buffer. It may block until vertical
	// refresh when VSync is on.
	SwapBuffers()

	// Poll processes pending window events and reports whether the
	// surface should keep running.
	Poll() bool

	// Close destroys the window. It is safe to call more than once.
	Close() error
}

// Options configures a new surface.
type Options struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// ErrInvalidOptions is returned for a non-positive size.
var ErrInvalidOptions = errors.New("surface: invalid options")

// Validate checks the requested size.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	return nil
}
