// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/window/gpu"
)

// Capabilities is the immutable capability record of a shader.
type Capabilities struct {
	Depth     bool
	Gradient  bool
	Graphic   bool
	Tint      bool
	Blend     bool
	Instances int
}

// Dims returns the number of position components: 3 with depth, else 2.
func (c Capabilities) Dims() int {
	if c.Depth {
		return 3
	}
	return 2
}

// Components returns the number of color components: 4 for blended
// gradients, 3 for opaque ones, 0 without a gradient.
func (c Capabilities) Components() int {
	switch {
	case !c.Gradient:
		return 0
	case c.Blend:
		return 4
	default:
		return 3
	}
}

// TexComponents returns 2 for textured shaders, else 0.
func (c Capabilities) TexComponents() int {
	if c.Graphic {
		return 2
	}
	return 0
}

// Stride returns the number of floats in one vertex record.
func (c Capabilities) Stride() int {
	return c.Dims() + c.Components() + c.TexComponents()
}

// Layout returns the interleaved vertex layout: position, then color, then
// texture coordinates, each at its conventional slot.
func (c Capabilities) Layout() gputypes.VertexBufferLayout {
	const f32 = 4
	attrs := []gputypes.VertexAttribute{
		{Format: gpu.FloatFormat(c.Dims()), Offset: 0, ShaderLocation: gpu.SlotPosition},
	}
	offset := uint64(c.Dims() * f32)
	if n := c.Components(); n > 0 {
		attrs = append(attrs, gputypes.VertexAttribute{
			Format: gpu.FloatFormat(n), Offset: offset, ShaderLocation: gpu.SlotColor,
		})
		offset += uint64(n * f32)
	}
	if c.Graphic {
		attrs = append(attrs, gputypes.VertexAttribute{
			Format: gputypes.VertexFormatFloat32x2, Offset: offset, ShaderLocation: gpu.SlotTexCoord,
		})
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(c.Stride() * f32),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// AttribMask returns the set of attribute slots the shader reads, as a
// bitmask indexed by slot.
func (c Capabilities) AttribMask() uint32 {
	m := uint32(1) << gpu.SlotPosition
	if c.Gradient {
		m |= 1 << gpu.SlotColor
	}
	if c.Graphic {
		m |= 1 << gpu.SlotTexCoord
	}
	return m
}
