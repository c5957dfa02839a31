// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import (
	"github.com/gogpu/window/mat4"
	"github.com/gogpu/window/shader"
)

// Builder accumulates faces into a Shape.
//
// Errors are sticky: after the first failure further calls do nothing and
// Finish returns that error.
type Builder struct {
	caps     shader.Capabilities
	dims     int
	stride   int
	input    []float32
	vertices []float32
	indices  []uint32
	err      error
	finished bool
}

// NewBuilder returns a builder for the layout implied by caps.
func NewBuilder(caps shader.Capabilities) *Builder {
	return &Builder{
		caps:   caps,
		dims:   caps.Dims(),
		stride: caps.Stride(),
	}
}

// Stride returns the number of floats per vertex record.
func (b *Builder) Stride() int { return b.stride }

// Err returns the first error encountered, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) failed() bool {
	if b.finished && b.err == nil {
		b.err = ErrGeometryAlreadyFinished
	}
	return b.err != nil
}

// Vertices sets the interleaved records used by subsequent Face calls.
// The slice is read, never retained past the next Vertices call or
// modified.
func (b *Builder) Vertices(v []float32) *Builder {
	if b.failed() {
		return b
	}
	if len(v)%b.stride != 0 {
		b.err = &MalformedVertexDataError{ExpectedStride: b.stride, ActualLen: len(v)}
		return b
	}
	b.input = v
	return b
}

// Face appends the current vertices transformed by t.
//
// Only the position is transformed; a 2D position is extended with z = 0
// and the transformed z is dropped. Color and texture components pass
// through. Each record reuses the slot of a nearly equal record already in
// the shape, or takes a new one.
func (b *Builder) Face(t mat4.Transform) *Builder {
	if b.failed() {
		return b
	}
	rec := make([]float32, b.stride)
	for off := 0; off+b.stride <= len(b.input); off += b.stride {
		src := b.input[off : off+b.stride]

		var p [3]float32
		copy(p[:b.dims], src[:b.dims])
		p = t.MulVec3(p)
		copy(rec, p[:b.dims])
		copy(rec[b.dims:], src[b.dims:])

		b.indices = append(b.indices, b.slot(rec))
	}
	return b
}

// slot returns the index of the record equal to rec, appending it first
// if none exists.
func (b *Builder) slot(rec []float32) uint32 {
	for off := 0; off < len(b.vertices); off += b.stride {
		if recordsEqual(b.vertices[off:off+b.stride], rec) {
			return uint32(off / b.stride)
		}
	}
	i := uint32(len(b.vertices) / b.stride)
	b.vertices = append(b.vertices, rec...)
	return i
}

// Finish hands the accumulated data to a new Shape. The builder cannot be
// used afterwards.
func (b *Builder) Finish() (*Shape, error) {
	if b.failed() {
		return nil, b.err
	}
	s := &Shape{
		caps:     b.caps,
		stride:   b.stride,
		vertices: b.vertices,
		indices:  b.indices,
	}
	b.vertices, b.indices, b.input = nil, nil, nil
	b.finished = true
	return s, nil
}
