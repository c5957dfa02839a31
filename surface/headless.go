// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/gpu/noop"
)

// HeadlessName is the registry name of the headless backend.
const HeadlessName = "headless"

func init() {
	Register(HeadlessName, -1, func(opts Options) (Surface, error) {
		return NewHeadless(opts.Width, opts.Height), nil
	}, nil)
}

// Headless is a surface without a window. Its device is a gpu/noop
// recorder, so everything drawn can be inspected afterwards.
type Headless struct {
	width, height int
	dev           *noop.Device
	frames        int
	limit         int
	closed        bool
}

// NewHeadless returns a headless surface of the given size.
func NewHeadless(width, height int) *Headless {
	return &Headless{width: width, height: height, dev: noop.New()}
}

// Size implements Surface.
func (h *Headless) Size() (int, int) { return h.width, h.height }

// Resize changes the reported size.
func (h *Headless) Resize(width, height int) {
	h.width, h.height = width, height
}

// MakeCurrent implements Surface.
func (h *Headless) MakeCurrent() {}

// Device implements Surface.
func (h *Headless) Device() (gpu.Device, error) { return h.dev, nil }

// Recorder returns the recording device.
func (h *Headless) Recorder() *noop.Device { return h.dev }

// SwapBuffers implements Surface. It counts frames.
func (h *Headless) SwapBuffers() { h.frames++ }

// Frames returns the number of presented frames.
func (h *Headless) Frames() int { return h.frames }

// Limit makes Poll report false once n frames have been presented. Zero
// removes the limit.
func (h *Headless) Limit(n int) { h.limit = n }

// Poll implements Surface.
func (h *Headless) Poll() bool {
	if h.closed {
		return false
	}
	return h.limit == 0 || h.frames < h.limit
}

// Close implements Surface.
func (h *Headless) Close() error {
	h.closed = true
	return nil
}
