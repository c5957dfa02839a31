// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface abstracts the native window that owns a GPU context.
//
// A Surface knows its drawable size, can make its context current, hands
// out the gpu.Device bound to that context, presents finished frames and
// pumps window events. Backends register themselves by name and priority:
//
//	func init() {
//	    surface.Register("glfw", 100, newWindow, available)
//	}
//
// NewSurface tries every available backend from the highest priority down
// and returns the first that opens. Backends registered with a negative
// priority are never picked automatically; ask for them by name.
//
// # Backends
//
//   - headless: no window, a recording gpu/noop device. Selected by name
//     only. Used by tests and tools.
//   - glfw: a native window with an OpenGL 3.3 core context, in the
//     surface/glfw package. Import it for its side effect.
//
// Surfaces are not safe for concurrent use. The goroutine that created a
// surface must drive it.
package surface
