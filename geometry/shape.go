// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import "github.com/gogpu/window/shader"

// Shape is finished, CPU-side geometry. It is immutable.
type Shape struct {
	caps     shader.Capabilities
	stride   int
	vertices []float32
	indices  []uint32
}

// Capabilities returns the layout the shape was built for.
func (s *Shape) Capabilities() shader.Capabilities { return s.caps }

// Stride returns the number of floats per vertex record.
func (s *Shape) Stride() int { return s.stride }

// Dims returns the number of position components.
func (s *Shape) Dims() int { return s.caps.Dims() }

// Components returns the number of color components.
func (s *Shape) Components() int { return s.caps.Components() }

// VertexCount returns the number of unique vertex records.
func (s *Shape) VertexCount() int { return len(s.vertices) / s.stride }

// Vertices returns the interleaved records. Callers must not modify it.
func (s *Shape) Vertices() []float32 { return s.vertices }

// Indices returns the index list. Callers must not modify it.
func (s *Shape) Indices() []uint32 { return s.indices }

// Vertex returns record i.
func (s *Shape) Vertex(i int) []float32 {
	return s.vertices[i*s.stride : (i+1)*s.stride]
}
