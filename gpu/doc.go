// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu defines the GPU command interface the rendering core talks to.
//
// The interface follows GL binding semantics: buffer and texture uploads
// target whatever object is currently bound, and uniform writes target the
// program in use. The draw-state cache in package render relies on this to
// skip redundant binds, so implementations must not rebind behind the
// caller's back.
//
// Implementations:
//   - gpu/opengl: OpenGL 3.3 core profile via go-gl
//   - gpu/noop: null device that allocates ids and counts calls
//
// Resource lifecycle:
//   - Resources are created via Create* methods
//   - Resources must be released via Delete* methods exactly once
//   - IDs become invalid after deletion and must not be reused
package gpu
