// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package opengl implements gpu.Device on the OpenGL 3.3 core profile.
//
// New must be called on the thread that owns a current GL context (see
// surface/glfw). The device binds a single vertex array object for its
// lifetime; attribute state is then driven directly by the caller.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/internal/logx"
)

// Device is an OpenGL gpu.Device.
type Device struct {
	vao uint32
}

// New loads the GL function pointers for the current context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, &gpu.DeviceError{Op: "load gl", Err: err}
	}

	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	if d.vao == 0 {
		return nil, &gpu.DeviceError{Op: "create vertex array"}
	}
	gl.BindVertexArray(d.vao)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	logx.L().Info("opengl: device ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return d, nil
}

// Release deletes the vertex array object.
func (d *Device) Release() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// Check implements gpu.Checker by draining the GL error queue.
func (d *Device) Check(op string) error {
	var first uint32
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		if first == 0 {
			first = e
		}
	}
	if first == 0 {
		return nil
	}
	return &gpu.DeviceError{Op: op, Err: fmt.Errorf("gl error 0x%04x", first)}
}

func target(t gputypes.BufferUsage) uint32 {
	if t == gpu.TargetIndex {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bytesPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

// CreateBuffer implements gpu.Device.
func (d *Device) CreateBuffer() (gpu.BufferID, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return gpu.InvalidID, &gpu.DeviceError{Op: "create buffer"}
	}
	return gpu.BufferID(id), nil
}

// BindBuffer implements gpu.Device.
func (d *Device) BindBuffer(t gputypes.BufferUsage, id gpu.BufferID) {
	gl.BindBuffer(target(t), uint32(id))
}

// BufferData implements gpu.Device.
func (d *Device) BufferData(t gputypes.BufferUsage, size int, data []byte) {
	if len(data) == size {
		gl.BufferData(target(t), size, bytesPtr(data), gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(target(t), size, nil, gl.DYNAMIC_DRAW)
	if len(data) > 0 {
		gl.BufferSubData(target(t), 0, len(data), gl.Ptr(data))
	}
}

// BufferSubData implements gpu.Device.
func (d *Device) BufferSubData(t gputypes.BufferUsage, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(target(t), offset, len(data), gl.Ptr(data))
}

// DeleteBuffer implements gpu.Device.
func (d *Device) DeleteBuffer(id gpu.BufferID) {
	name := uint32(id)
	gl.DeleteBuffers(1, &name)
}

// CompileShader implements gpu.Device.
func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.ShaderID, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == gpu.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	shader := gl.CreateShader(kind)
	if shader == 0 {
		return gpu.InvalidID, &gpu.DeviceError{Op: "create shader"}
	}

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return gpu.InvalidID, &gpu.StatusError{Log: strings.TrimRight(log, "\x00\n")}
	}
	return gpu.ShaderID(shader), nil
}

// DeleteShader implements gpu.Device.
func (d *Device) DeleteShader(id gpu.ShaderID) {
	gl.DeleteShader(uint32(id))
}

// CreateProgram implements gpu.Device.
func (d *Device) CreateProgram() (gpu.ProgramID, error) {
	p := gl.CreateProgram()
	if p == 0 {
		return gpu.InvalidID, &gpu.DeviceError{Op: "create program"}
	}
	return gpu.ProgramID(p), nil
}

// AttachShader implements gpu.Device.
func (d *Device) AttachShader(p gpu.ProgramID, s gpu.ShaderID) {
	gl.AttachShader(uint32(p), uint32(s))
}

// BindAttribLocation implements gpu.Device.
func (d *Device) BindAttribLocation(p gpu.ProgramID, slot uint32, name string) {
	gl.BindAttribLocation(uint32(p), slot, gl.Str(name+"\x00"))
}

// LinkProgram implements gpu.Device.
func (d *Device) LinkProgram(p gpu.ProgramID) error {
	program := uint32(p)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return &gpu.StatusError{Log: strings.TrimRight(log, "\x00\n")}
	}
	return nil
}

// UseProgram implements gpu.Device.
func (d *Device) UseProgram(p gpu.ProgramID) {
	gl.UseProgram(uint32(p))
}

// DeleteProgram implements gpu.Device.
func (d *Device) DeleteProgram(p gpu.ProgramID) {
	gl.DeleteProgram(uint32(p))
}

// UniformLocation implements gpu.Device.
func (d *Device) UniformLocation(p gpu.ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// UniformMatrix4fv implements gpu.Device.
func (d *Device) UniformMatrix4fv(loc int32, m [][16]float32) {
	if len(m) == 0 {
		return
	}
	gl.UniformMatrix4fv(loc, int32(len(m)), false, &m[0][0])
}

// Uniform4f implements gpu.Device.
func (d *Device) Uniform4f(loc int32, v [4]float32) {
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

// Uniform2f implements gpu.Device.
func (d *Device) Uniform2f(loc int32, v [2]float32) {
	gl.Uniform2f(loc, v[0], v[1])
}

// Uniform1i implements gpu.Device.
func (d *Device) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

// VertexAttribPointer implements gpu.Device.
func (d *Device) VertexAttribPointer(attr gputypes.VertexAttribute, stride uint64) {
	size := int32(gpu.ComponentCount(attr.Format))
	gl.VertexAttribPointer(attr.ShaderLocation, size, gl.FLOAT, false, int32(stride), gl.PtrOffset(int(attr.Offset)))
}

// EnableVertexAttribArray implements gpu.Device.
func (d *Device) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

// DisableVertexAttribArray implements gpu.Device.
func (d *Device) DisableVertexAttribArray(slot uint32) {
	gl.DisableVertexAttribArray(slot)
}

func toggle(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// SetBlend implements gpu.Device.
func (d *Device) SetBlend(enabled bool) { toggle(gl.BLEND, enabled) }

// SetDepthTest implements gpu.Device.
func (d *Device) SetDepthTest(enabled bool) { toggle(gl.DEPTH_TEST, enabled) }

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture() (gpu.TextureID, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return gpu.InvalidID, &gpu.DeviceError{Op: "create texture"}
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return gpu.TextureID(id), nil
}

// BindTexture implements gpu.Device.
func (d *Device) BindTexture(id gpu.TextureID) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

// TexImage2D implements gpu.Device.
func (d *Device) TexImage2D(level int, size gputypes.Extent3D, format gputypes.TextureFormat, pixels []byte) {
	internal, external := int32(gl.RGBA8), uint32(gl.RGBA)
	if format == gputypes.TextureFormatBGRA8Unorm {
		external = gl.BGRA
	}
	gl.TexImage2D(gl.TEXTURE_2D, int32(level), internal,
		int32(size.Width), int32(size.Height), 0,
		external, gl.UNSIGNED_BYTE, bytesPtr(pixels))
}

// SetMaxMipLevel implements gpu.Device.
func (d *Device) SetMaxMipLevel(level int) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(level))
}

// GenerateMipmap implements gpu.Device.
func (d *Device) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

// DeleteTexture implements gpu.Device.
func (d *Device) DeleteTexture(id gpu.TextureID) {
	name := uint32(id)
	gl.DeleteTextures(1, &name)
}

// Viewport implements gpu.Device.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ClearColor implements gpu.Device.
func (d *Device) ClearColor(c gputypes.Color) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

// Clear implements gpu.Device.
func (d *Device) Clear(depth bool) {
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

// DrawElements implements gpu.Device.
func (d *Device) DrawElements(topology gputypes.PrimitiveTopology, count int) {
	mode := uint32(gl.TRIANGLES)
	switch topology {
	case gputypes.PrimitiveTopologyLineList:
		mode = gl.LINES
	case gputypes.PrimitiveTopologyPointList:
		mode = gl.POINTS
	}
	gl.DrawElements(mode, int32(count), gl.UNSIGNED_INT, nil)
}

var (
	_ gpu.Device  = (*Device)(nil)
	_ gpu.Checker = (*Device)(nil)
)
