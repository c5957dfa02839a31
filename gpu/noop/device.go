// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package noop provides a GPU device that performs no rendering.
//
// The device allocates ids, keeps the data uploaded to buffers and textures,
// and counts every call by method name. It backs the headless surface and
// the tests of the rendering core, where call counts are the observable
// result of the draw-state cache.
package noop

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/window/gpu"
)

// Buffer is the stored state of one buffer.
type Buffer struct {
	Data []byte
}

// Texture is the stored state of one texture.
type Texture struct {
	Levels   map[int][]byte
	Sizes    map[int]gputypes.Extent3D
	MaxLevel int
	Mipmaps  int
}

// Program is the stored state of one program.
type Program struct {
	Shaders  []gpu.ShaderID
	Attribs  map[string]uint32
	Linked   bool

	// Locations maps uniform names to the locations handed out.
	Locations map[string]int32

	// Uniforms holds the last value written to each location.
	Uniforms map[int32][]float32
}

// Uniform returns the last value written to the named uniform.
func (p *Program) Uniform(name string) ([]float32, bool) {
	loc, ok := p.Locations[name]
	if !ok {
		return nil, false
	}
	v, ok := p.Uniforms[loc]
	return v, ok
}

// Device is a null gpu.Device.
//
// Failure injection fields are read at call time and may be set between
// calls.
type Device struct {
	// CompileFailures maps a stage to the info log its compilation fails with.
	CompileFailures map[gpu.Stage]string

	// LinkFailure, when non-empty, makes LinkProgram fail with this log.
	LinkFailure string

	// Uniforms lists the uniform names programs expose. A nil map exposes
	// every name.
	Uniforms map[string]bool

	// CreateErr, when set, is returned by every Create* method.
	CreateErr error

	// QueuedErr, when set, is reported once by the next Check, the way a
	// driver reports an error raised by an earlier call.
	QueuedErr error

	nextID   uint64
	calls    map[string]int
	order    []string
	buffers  map[gpu.BufferID]*Buffer
	textures map[gpu.TextureID]*Texture
	programs map[gpu.ProgramID]*Program
	shaders  map[gpu.ShaderID]gpu.Stage
	bound    map[gputypes.BufferUsage]gpu.BufferID
	texture  gpu.TextureID
	program  gpu.ProgramID
	enabled  map[uint32]bool
	attribs  map[uint32]gputypes.VertexAttribute
	blend    bool
	depth    bool
	clear    gputypes.Color
	draws    []int
}

// New returns an empty device.
func New() *Device {
	d := &Device{}
	d.Reset()
	return d
}

// Reset drops every resource and counter.
func (d *Device) Reset() {
	d.nextID = 0
	d.calls = make(map[string]int)
	d.order = nil
	d.buffers = make(map[gpu.BufferID]*Buffer)
	d.textures = make(map[gpu.TextureID]*Texture)
	d.programs = make(map[gpu.ProgramID]*Program)
	d.shaders = make(map[gpu.ShaderID]gpu.Stage)
	d.bound = make(map[gputypes.BufferUsage]gpu.BufferID)
	d.texture = gpu.InvalidID
	d.program = gpu.InvalidID
	d.enabled = make(map[uint32]bool)
	d.attribs = make(map[uint32]gputypes.VertexAttribute)
	d.blend, d.depth = false, false
	d.draws = nil
}

// ResetCalls clears the call counters and log but keeps resources.
func (d *Device) ResetCalls() {
	d.calls = make(map[string]int)
	d.order = nil
	d.draws = nil
}

// Calls returns how many times the named method was called.
func (d *Device) Calls(name string) int { return d.calls[name] }

// Log returns the method names in call order.
func (d *Device) Log() []string { return append([]string(nil), d.order...) }

// Draws returns the index count of every DrawElements call.
func (d *Device) Draws() []int { return append([]int(nil), d.draws...) }

// Buffer returns the stored state of a live buffer.
func (d *Device) Buffer(id gpu.BufferID) (*Buffer, bool) {
	b, ok := d.buffers[id]
	return b, ok
}

// Texture returns the stored state of a live texture.
func (d *Device) Texture(id gpu.TextureID) (*Texture, bool) {
	t, ok := d.textures[id]
	return t, ok
}

// Program returns the stored state of a live program.
func (d *Device) Program(id gpu.ProgramID) (*Program, bool) {
	p, ok := d.programs[id]
	return p, ok
}

// Live returns the number of resources not yet deleted.
func (d *Device) Live() int {
	return len(d.buffers) + len(d.textures) + len(d.programs) + len(d.shaders)
}

// Enabled reports whether an attribute array is enabled.
func (d *Device) Enabled(slot uint32) bool { return d.enabled[slot] }

// Attrib returns the last pointer set for slot.
func (d *Device) Attrib(slot uint32) (gputypes.VertexAttribute, bool) {
	a, ok := d.attribs[slot]
	return a, ok
}

// Blend reports the blend toggle.
func (d *Device) Blend() bool { return d.blend }

// DepthTest reports the depth toggle.
func (d *Device) DepthTest() bool { return d.depth }

// ClearValue returns the last clear color.
func (d *Device) ClearValue() gputypes.Color { return d.clear }

// CurrentProgram returns the program in use.
func (d *Device) CurrentProgram() gpu.ProgramID { return d.program }

// BoundTexture returns the texture bound to unit 0.
func (d *Device) BoundTexture() gpu.TextureID { return d.texture }

func (d *Device) record(name string) {
	d.calls[name]++
	d.order = append(d.order, name)
}

func (d *Device) id() uint64 {
	d.nextID++
	return d.nextID
}

// CreateBuffer implements gpu.Device.
func (d *Device) CreateBuffer() (gpu.BufferID, error) {
	d.record("CreateBuffer")
	if d.CreateErr != nil {
		return gpu.InvalidID, d.CreateErr
	}
	id := gpu.BufferID(d.id())
	d.buffers[id] = &Buffer{}
	return id, nil
}

// BindBuffer implements gpu.Device.
func (d *Device) BindBuffer(target gputypes.BufferUsage, id gpu.BufferID) {
	d.record("BindBuffer")
	d.bound[target] = id
}

// BufferData implements gpu.Device.
func (d *Device) BufferData(target gputypes.BufferUsage, size int, data []byte) {
	d.record("BufferData")
	b, ok := d.buffers[d.bound[target]]
	if !ok {
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
}

// BufferSubData implements gpu.Device.
func (d *Device) BufferSubData(target gputypes.BufferUsage, offset int, data []byte) {
	d.record("BufferSubData")
	b, ok := d.buffers[d.bound[target]]
	if !ok || offset+len(data) > len(b.Data) {
		return
	}
	copy(b.Data[offset:], data)
}

// DeleteBuffer implements gpu.Device.
func (d *Device) DeleteBuffer(id gpu.BufferID) {
	d.record("DeleteBuffer")
	delete(d.buffers, id)
}

// CompileShader implements gpu.Device.
func (d *Device) CompileShader(stage gpu.Stage, source string) (gpu.ShaderID, error) {
	d.record("CompileShader")
	if d.CreateErr != nil {
		return gpu.InvalidID, d.CreateErr
	}
	if log, ok := d.CompileFailures[stage]; ok {
		return gpu.InvalidID, &gpu.StatusError{Log: log}
	}
	if source == "" {
		return gpu.InvalidID, &gpu.StatusError{Log: "empty source"}
	}
	id := gpu.ShaderID(d.id())
	d.shaders[id] = stage
	return id, nil
}

// DeleteShader implements gpu.Device.
func (d *Device) DeleteShader(id gpu.ShaderID) {
	d.record("DeleteShader")
	delete(d.shaders, id)
}

// CreateProgram implements gpu.Device.
func (d *Device) CreateProgram() (gpu.ProgramID, error) {
	d.record("CreateProgram")
	if d.CreateErr != nil {
		return gpu.InvalidID, d.CreateErr
	}
	id := gpu.ProgramID(d.id())
	d.programs[id] = &Program{
		Attribs:   make(map[string]uint32),
		Locations: make(map[string]int32),
		Uniforms:  make(map[int32][]float32),
	}
	return id, nil
}

// AttachShader implements gpu.Device.
func (d *Device) AttachShader(p gpu.ProgramID, s gpu.ShaderID) {
	d.record("AttachShader")
	if prog, ok := d.programs[p]; ok {
		prog.Shaders = append(prog.Shaders, s)
	}
}

// BindAttribLocation implements gpu.Device.
func (d *Device) BindAttribLocation(p gpu.ProgramID, slot uint32, name string) {
	d.record("BindAttribLocation")
	if prog, ok := d.programs[p]; ok {
		prog.Attribs[name] = slot
	}
}

// LinkProgram implements gpu.Device.
func (d *Device) LinkProgram(p gpu.ProgramID) error {
	d.record("LinkProgram")
	prog, ok := d.programs[p]
	if !ok {
		return &gpu.StatusError{Log: fmt.Sprintf("unknown program %d", p)}
	}
	if d.LinkFailure != "" {
		return &gpu.StatusError{Log: d.LinkFailure}
	}
	if len(prog.Shaders) < 2 {
		return &gpu.StatusError{Log: "program needs a vertex and a fragment stage"}
	}
	prog.Linked = true
	return nil
}

// UseProgram implements gpu.Device.
func (d *Device) UseProgram(p gpu.ProgramID) {
	d.record("UseProgram")
	d.program = p
}

// DeleteProgram implements gpu.Device.
func (d *Device) DeleteProgram(p gpu.ProgramID) {
	d.record("DeleteProgram")
	delete(d.programs, p)
	if d.program == p {
		d.program = gpu.InvalidID
	}
}

// UniformLocation implements gpu.Device. Locations are stable per name
// within a program.
func (d *Device) UniformLocation(p gpu.ProgramID, name string) int32 {
	d.record("UniformLocation")
	prog, ok := d.programs[p]
	if !ok || !prog.Linked {
		return -1
	}
	if d.Uniforms != nil && !d.Uniforms[name] {
		return -1
	}
	if loc, ok := prog.Locations[name]; ok {
		return loc
	}
	loc := int32(len(prog.Locations))
	prog.Locations[name] = loc
	return loc
}

func (d *Device) setUniform(loc int32, v []float32) {
	if prog, ok := d.programs[d.program]; ok && loc >= 0 {
		prog.Uniforms[loc] = v
	}
}

// UniformMatrix4fv implements gpu.Device.
func (d *Device) UniformMatrix4fv(loc int32, m [][16]float32) {
	d.record("UniformMatrix4fv")
	v := make([]float32, 0, 16*len(m))
	for _, a := range m {
		v = append(v, a[:]...)
	}
	d.setUniform(loc, v)
}

// Uniform4f implements gpu.Device.
func (d *Device) Uniform4f(loc int32, v [4]float32) {
	d.record("Uniform4f")
	d.setUniform(loc, v[:])
}

// Uniform2f implements gpu.Device.
func (d *Device) Uniform2f(loc int32, v [2]float32) {
	d.record("Uniform2f")
	d.setUniform(loc, v[:])
}

// Uniform1i implements gpu.Device.
func (d *Device) Uniform1i(loc int32, v int32) {
	d.record("Uniform1i")
	d.setUniform(loc, []float32{float32(v)})
}

// VertexAttribPointer implements gpu.Device.
func (d *Device) VertexAttribPointer(attr gputypes.VertexAttribute, stride uint64) {
	d.record("VertexAttribPointer")
	d.attribs[attr.ShaderLocation] = attr
}

// EnableVertexAttribArray implements gpu.Device.
func (d *Device) EnableVertexAttribArray(slot uint32) {
	d.record("EnableVertexAttribArray")
	d.enabled[slot] = true
}

// DisableVertexAttribArray implements gpu.Device.
func (d *Device) DisableVertexAttribArray(slot uint32) {
	d.record("DisableVertexAttribArray")
	d.enabled[slot] = false
}

// SetBlend implements gpu.Device.
func (d *Device) SetBlend(enabled bool) {
	d.record("SetBlend")
	d.blend = enabled
}

// SetDepthTest implements gpu.Device.
func (d *Device) SetDepthTest(enabled bool) {
	d.record("SetDepthTest")
	d.depth = enabled
}

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture() (gpu.TextureID, error) {
	d.record("CreateTexture")
	if d.CreateErr != nil {
		return gpu.InvalidID, d.CreateErr
	}
	id := gpu.TextureID(d.id())
	d.textures[id] = &Texture{
		Levels: make(map[int][]byte),
		Sizes:  make(map[int]gputypes.Extent3D),
	}
	return id, nil
}

// BindTexture implements gpu.Device.
func (d *Device) BindTexture(id gpu.TextureID) {
	d.record("BindTexture")
	d.texture = id
}

// TexImage2D implements gpu.Device.
func (d *Device) TexImage2D(level int, size gputypes.Extent3D, format gputypes.TextureFormat, pixels []byte) {
	d.record("TexImage2D")
	t, ok := d.textures[d.texture]
	if !ok {
		return
	}
	t.Levels[level] = append([]byte(nil), pixels...)
	t.Sizes[level] = size
}

// SetMaxMipLevel implements gpu.Device.
func (d *Device) SetMaxMipLevel(level int) {
	d.record("SetMaxMipLevel")
	if t, ok := d.textures[d.texture]; ok {
		t.MaxLevel = level
	}
}

// GenerateMipmap implements gpu.Device.
func (d *Device) GenerateMipmap() {
	d.record("GenerateMipmap")
	if t, ok := d.textures[d.texture]; ok {
		t.Mipmaps++
	}
}

// DeleteTexture implements gpu.Device.
func (d *Device) DeleteTexture(id gpu.TextureID) {
	d.record("DeleteTexture")
	delete(d.textures, id)
	if d.texture == id {
		d.texture = gpu.InvalidID
	}
}

// Viewport implements gpu.Device.
func (d *Device) Viewport(width, height int) {
	d.record("Viewport")
}

// ClearColor implements gpu.Device.
func (d *Device) ClearColor(c gputypes.Color) {
	d.record("ClearColor")
	d.clear = c
}

// Clear implements gpu.Device.
func (d *Device) Clear(depth bool) {
	d.record("Clear")
}

// DrawElements implements gpu.Device.
func (d *Device) DrawElements(topology gputypes.PrimitiveTopology, count int) {
	d.record("DrawElements")
	d.draws = append(d.draws, count)
}

// ErrInjected is a convenience error for failure injection in tests.
var ErrInjected = errors.New("noop: injected failure")

// Check implements gpu.Checker.
func (d *Device) Check(op string) error {
	d.record("Check")
	if d.QueuedErr == nil {
		return nil
	}
	err := d.QueuedErr
	d.QueuedErr = nil
	return &gpu.DeviceError{Op: op, Err: err}
}

var (
	_ gpu.Device  = (*Device)(nil)
	_ gpu.Checker = (*Device)(nil)
)
