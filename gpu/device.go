// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "github.com/gogpu/gputypes"

// Device is the GPU command interface.
//
// A Device is bound to one GPU context and must only be used from the
// goroutine that owns that context. Implementations are not thread-safe.
type Device interface {
	// === Buffers ===

	// CreateBuffer allocates a buffer name. Storage is allocated by BufferData.
	CreateBuffer() (BufferID, error)

	// BindBuffer binds id to the vertex or index target.
	BindBuffer(target gputypes.BufferUsage, id BufferID)

	// BufferData (re)allocates size bytes for the buffer bound to target
	// and copies data to its start. data may be shorter than size or nil.
	BufferData(target gputypes.BufferUsage, size int, data []byte)

	// BufferSubData writes data at offset into the buffer bound to target.
	BufferSubData(target gputypes.BufferUsage, offset int, data []byte)

	// DeleteBuffer releases a buffer.
	DeleteBuffer(id BufferID)

	// === Programs ===

	// CompileShader compiles one stage. A compilation failure is reported
	// as *StatusError carrying the driver's info log.
	CompileShader(stage Stage, source string) (ShaderID, error)

	// DeleteShader releases a shader stage.
	DeleteShader(id ShaderID)

	// CreateProgram allocates an empty program.
	CreateProgram() (ProgramID, error)

	// AttachShader attaches a compiled stage to a program.
	AttachShader(p ProgramID, s ShaderID)

	// BindAttribLocation assigns an attribute name to a slot. It only takes
	// effect for the next LinkProgram.
	BindAttribLocation(p ProgramID, slot uint32, name string)

	// LinkProgram links p. A link failure is reported as *StatusError.
	LinkProgram(p ProgramID) error

	// UseProgram makes p current.
	UseProgram(p ProgramID)

	// DeleteProgram releases a program.
	DeleteProgram(p ProgramID)

	// UniformLocation resolves a uniform by name; -1 when absent.
	UniformLocation(p ProgramID, name string) int32

	// === Uniforms (current program) ===

	UniformMatrix4fv(loc int32, m [][16]float32)
	Uniform4f(loc int32, v [4]float32)
	Uniform2f(loc int32, v [2]float32)
	Uniform1i(loc int32, v int32)

	// === Vertex state ===

	// VertexAttribPointer describes one float attribute of the bound
	// vertex buffer. stride is in bytes.
	VertexAttribPointer(attr gputypes.VertexAttribute, stride uint64)
	EnableVertexAttribArray(slot uint32)
	DisableVertexAttribArray(slot uint32)

	// SetBlend toggles source-alpha blending.
	SetBlend(enabled bool)

	// SetDepthTest toggles depth testing.
	SetDepthTest(enabled bool)

	// === Textures ===

	// CreateTexture allocates a 2D texture name.
	CreateTexture() (TextureID, error)

	// BindTexture binds id to texture unit 0.
	BindTexture(id TextureID)

	// TexImage2D uploads one mip level of the bound texture.
	TexImage2D(level int, size gputypes.Extent3D, format gputypes.TextureFormat, pixels []byte)

	// SetMaxMipLevel limits sampling of the bound texture to levels 0..level.
	SetMaxMipLevel(level int)

	// GenerateMipmap rebuilds the mip chain of the bound texture from level 0.
	GenerateMipmap()

	// DeleteTexture releases a texture.
	DeleteTexture(id TextureID)

	// === Frame ===

	Viewport(width, height int)
	ClearColor(c gputypes.Color)

	// Clear clears the color buffer and, when depth is set, the depth buffer.
	Clear(depth bool)

	// DrawElements draws count uint32 indices from the bound index buffer.
	DrawElements(topology gputypes.PrimitiveTopology, count int)
}

// Checker is implemented by devices that queue errors instead of returning
// them from each call, as OpenGL does.
type Checker interface {
	// Check drains the device's error queue and returns the first error as
	// *DeviceError, or nil if the queue was empty. op names the work done
	// since the previous check.
	Check(op string) error
}
