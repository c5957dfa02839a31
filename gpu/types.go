// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "github.com/gogpu/gputypes"

// Resource IDs
//
// These opaque IDs represent GPU objects. Each device maps them to its
// native handles.

// BufferID is an opaque handle to a GPU buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// ShaderID is an opaque handle to a compiled shader stage.
type ShaderID uint64

// ProgramID is an opaque handle to a linked program.
type ProgramID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// Stage identifies a programmable pipeline stage.
type Stage uint8

// Pipeline stages.
const (
	StageVertex Stage = iota + 1
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Conventional attribute slots. Position is always present; color and
// texture coordinates only when the shader declares them.
const (
	SlotPosition uint32 = 0
	SlotColor    uint32 = 1
	SlotTexCoord uint32 = 2
)

// Buffer binding targets.
const (
	TargetVertex = gputypes.BufferUsageVertex
	TargetIndex  = gputypes.BufferUsageIndex
)

// ComponentCount returns the number of float32 components of a vertex
// format, or 0 for formats the core never emits.
func ComponentCount(f gputypes.VertexFormat) int {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 1
	case gputypes.VertexFormatFloat32x2:
		return 2
	case gputypes.VertexFormatFloat32x3:
		return 3
	case gputypes.VertexFormatFloat32x4:
		return 4
	default:
		return 0
	}
}

// FloatFormat returns the float32 vertex format with n components.
func FloatFormat(n int) gputypes.VertexFormat {
	switch n {
	case 1:
		return gputypes.VertexFormatFloat32
	case 2:
		return gputypes.VertexFormatFloat32x2
	case 3:
		return gputypes.VertexFormatFloat32x3
	default:
		return gputypes.VertexFormatFloat32x4
	}
}
