// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/window/geometry"
	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/graphic"
	"github.com/gogpu/window/internal/logx"
	"github.com/gogpu/window/mat4"
	"github.com/gogpu/window/shader"
)

var (
	// ErrReleased is returned when drawing with a closed resource.
	ErrReleased = errors.New("render: resource released")

	// ErrLayoutMismatch is returned when geometry was built for a vertex
	// layout other than the shader's.
	ErrLayoutMismatch = errors.New("render: geometry layout does not match shader")
)

// Geometry is drawable indexed geometry. *geometry.Group implements it.
// Implementations must be comparable; pointer receivers are.
type Geometry interface {
	// ID identifies the geometry for binding purposes.
	ID() gpu.BufferID

	// Buffers returns the vertex and index buffers.
	Buffers() (vertex, index gpu.BufferID)

	// Capabilities returns the vertex layout.
	Capabilities() shader.Capabilities

	// Len returns the number of indices.
	Len() int

	// Pending reports whether Sync has data to upload.
	Pending() bool

	// Sync uploads pending data to the bound buffers.
	Sync()

	// InstanceMatrices returns the per-instance transforms.
	InstanceMatrices() [][16]float32
}

// Renderer submits draw calls through a gpu.Device and owns the binding
// cache for it.
type Renderer struct {
	dev     gpu.Device
	cache   cache
	stats   Stats
	clear   gputypes.Color
	inFrame bool
}

// New returns a renderer for dev. dev must be in its default state (or
// Invalidate must be called before the first frame).
func New(dev gpu.Device) *Renderer {
	r := &Renderer{dev: dev, clear: gputypes.Color{A: 1}}
	dev.ClearColor(r.clear)
	return r
}

// Device returns the underlying device.
func (r *Renderer) Device() gpu.Device { return r.dev }

// Invalidate forgets every cached binding. The next draw rebinds
// everything. Use it after talking to the device directly, inside or
// outside a frame.
func (r *Renderer) Invalidate() {
	r.cache.reset()
	r.dev.SetBlend(false)
	r.dev.SetDepthTest(false)
	for _, slot := range []uint32{gpu.SlotPosition, gpu.SlotColor, gpu.SlotTexCoord} {
		r.dev.DisableVertexAttribArray(slot)
	}
	if r.inFrame {
		r.dev.EnableVertexAttribArray(gpu.SlotPosition)
		r.cache.attribs |= bitPosition
	}
}

// SetBackground sets the clear color.
func (r *Renderer) SetBackground(red, green, blue float32) {
	r.clear = gputypes.Color{R: float64(red), G: float64(green), B: float64(blue), A: 1}
	r.dev.ClearColor(r.clear)
}

// Background returns the clear color.
func (r *Renderer) Background() gputypes.Color { return r.clear }

// Viewport sets the drawable size.
func (r *Renderer) Viewport(width, height int) {
	r.dev.Viewport(width, height)
}

// BeginFrame clears the color and depth buffers, forgets the bound
// geometry and enables the position array.
func (r *Renderer) BeginFrame() {
	r.stats = Stats{}
	r.dev.Clear(true)
	r.cache.geometry = nil
	r.dev.EnableVertexAttribArray(gpu.SlotPosition)
	r.cache.attribs |= bitPosition
	r.inFrame = true
}

// EndFrame disables the position array and returns the frame's counters.
// Presenting is up to the surface.
func (r *Renderer) EndFrame() Stats {
	r.dev.DisableVertexAttribArray(gpu.SlotPosition)
	r.cache.attribs &^= bitPosition
	r.inFrame = false
	logx.L().Debug("render: frame", "stats", r.stats)
	return r.stats
}

// Check reports an error the device raised since the previous check. Only
// devices implementing gpu.Checker can fail here. Errors are
// *gpu.DeviceError and leave the GPU state undefined.
func (r *Renderer) Check(op string) error {
	c, ok := r.dev.(gpu.Checker)
	if !ok {
		return nil
	}
	if err := c.Check(op); err != nil {
		logx.L().Error("render: device error", "op", op, "err", err)
		r.Invalidate()
		return err
	}
	return nil
}

// Stats returns the counters of the current frame so far.
func (r *Renderer) Stats() Stats { return r.stats }

// Draw renders g with sh.
func (r *Renderer) Draw(sh *shader.Shader, g Geometry) error {
	return r.draw(sh, g, nil)
}

// DrawGraphic renders g with sh, sampling gr.
func (r *Renderer) DrawGraphic(sh *shader.Shader, g Geometry, gr *graphic.Graphic) error {
	if gr == nil || gr.Closed() {
		return fmt.Errorf("%w: graphic", ErrReleased)
	}
	return r.draw(sh, g, gr)
}

func (r *Renderer) draw(sh *shader.Shader, g Geometry, gr *graphic.Graphic) error {
	if sh == nil || sh.Closed() {
		return fmt.Errorf("%w: shader", ErrReleased)
	}
	if g == nil || g.ID() == gpu.InvalidID {
		return fmt.Errorf("%w: geometry", ErrReleased)
	}
	caps := sh.Capabilities()
	layout := g.Capabilities()
	if layout.Dims() != caps.Dims() || layout.Components() != caps.Components() ||
		layout.TexComponents() != caps.TexComponents() {
		return fmt.Errorf("%w: stride %d, shader expects %d", ErrLayoutMismatch, layout.Stride(), caps.Stride())
	}

	r.useProgram(sh)
	r.setToggles(caps)

	if g != r.cache.geometry || g.Pending() {
		vbo, ibo := g.Buffers()
		r.dev.BindBuffer(gpu.TargetVertex, vbo)
		r.dev.BindBuffer(gpu.TargetIndex, ibo)
		g.Sync()

		l := layout.Layout()
		for _, a := range l.Attributes {
			r.dev.VertexAttribPointer(a, l.ArrayStride)
		}
		r.cache.geometry = g
		r.stats.GeometryBinds++
	}

	if gr != nil && gr != r.cache.texture {
		r.dev.BindTexture(gr.ID())
		r.cache.texture = gr
		r.stats.TextureBinds++
	}

	if slots := sh.InstanceSlots(); len(slots) > 0 {
		m := g.InstanceMatrices()
		for _, loc := range slots {
			r.dev.UniformMatrix4fv(loc, m)
		}
	}

	if n := g.Len(); n > 0 {
		r.dev.DrawElements(gputypes.PrimitiveTopologyTriangleList, n)
		r.stats.DrawCalls++
		r.stats.Indices += n
	}
	return nil
}

// useProgram binds sh's program if it is not current, and brings the
// color and texture coordinate arrays in line with its capabilities.
func (r *Renderer) useProgram(sh *shader.Shader) {
	p := sh.Program()
	if p == r.cache.program {
		return
	}
	r.dev.UseProgram(p)
	r.cache.program = p
	r.stats.ProgramBinds++

	want := sh.Capabilities().AttribMask() & optionalAttribs
	have := r.cache.attribs & optionalAttribs
	for _, slot := range []uint32{gpu.SlotColor, gpu.SlotTexCoord} {
		bit := uint32(1) << slot
		switch {
		case want&bit != 0 && have&bit == 0:
			r.dev.EnableVertexAttribArray(slot)
		case want&bit == 0 && have&bit != 0:
			r.dev.DisableVertexAttribArray(slot)
		default:
			continue
		}
		r.stats.AttribToggles++
	}
	r.cache.attribs = r.cache.attribs&^optionalAttribs | want
}

// setToggles flips blend and depth testing only when they differ from the
// cached state.
func (r *Renderer) setToggles(caps shader.Capabilities) {
	if caps.Blend != r.cache.blend {
		r.dev.SetBlend(caps.Blend)
		r.cache.blend = caps.Blend
		r.stats.BlendToggles++
	}
	if caps.Depth != r.cache.depth {
		r.dev.SetDepthTest(caps.Depth)
		r.cache.depth = caps.Depth
		r.stats.DepthToggles++
	}
}

// SetCamera uploads t as sh's camera. Shaders without depth have no camera;
// the call is ignored with a warning.
func (r *Renderer) SetCamera(sh *shader.Shader, t mat4.Transform) {
	if sh.Closed() {
		return
	}
	if !sh.Capabilities().Depth {
		logx.L().Warn("render: SetCamera on a shader without depth", "program", sh.Program())
		return
	}
	r.useProgram(sh)
	r.dev.UniformMatrix4fv(sh.Locations().Camera, [][16]float32{t.Array()})
}

// SetTint uploads rgba as sh's tint. Shaders without tint ignore it with a
// warning.
func (r *Renderer) SetTint(sh *shader.Shader, rgba [4]float32) {
	if sh.Closed() {
		return
	}
	if !sh.Capabilities().Tint {
		logx.L().Warn("render: SetTint on a shader without tint", "program", sh.Program())
		return
	}
	r.useProgram(sh)
	r.dev.Uniform4f(sh.Locations().Tint, rgba)
}

// SetRegion sets the texture atlas remap of sh: uv' = uv*scale + translate.
func (r *Renderer) SetRegion(sh *shader.Shader, reg geometry.Region) {
	if sh.Closed() {
		return
	}
	if !sh.Capabilities().Graphic {
		logx.L().Warn("render: SetRegion on a shader without graphic", "program", sh.Program())
		return
	}
	r.useProgram(sh)
	l := sh.Locations()
	r.dev.Uniform2f(l.Translate, reg.Translate)
	r.dev.Uniform2f(l.Scale, reg.Scale)
}

// CompileShader compiles cfg. Compilation may change the program in use, so
// the cached program is forgotten.
func (r *Renderer) CompileShader(cfg shader.Config) (*shader.Shader, error) {
	sh, err := shader.Compile(r.dev, cfg)
	r.cache.program = gpu.InvalidID
	return sh, err
}

// ReleaseShader closes sh and forgets it if current.
func (r *Renderer) ReleaseShader(sh *shader.Shader) {
	if sh.Program() == r.cache.program {
		r.cache.program = gpu.InvalidID
	}
	sh.Close()
}

// NewGroup allocates an empty group laid out for sh.
func (r *Renderer) NewGroup(sh *shader.Shader) (*geometry.Group, error) {
	return geometry.NewGroup(r.dev, sh.Capabilities())
}

// ReleaseGroup closes g and forgets it if bound. Closing g directly is
// equivalent.
func (r *Renderer) ReleaseGroup(g *geometry.Group) {
	if r.cache.geometry == Geometry(g) {
		r.cache.geometry = nil
	}
	g.Close()
}

// UploadGraphic creates a texture from pixels (see graphic.New). The new
// texture is left bound.
func (r *Renderer) UploadGraphic(pixels []byte, width, height int) (*graphic.Graphic, error) {
	gr, err := graphic.New(r.dev, pixels, width, height)
	if err != nil {
		return nil, err
	}
	r.cache.texture = gr
	return gr, nil
}

// UpdateGraphic edits gr's pixels through fn and re-uploads them.
func (r *Renderer) UpdateGraphic(gr *graphic.Graphic, fn func(pixels []byte, width int)) error {
	if err := gr.Update(fn); err != nil {
		return err
	}
	r.cache.texture = gr
	return nil
}

// ResizeGraphic replaces gr's pixels and dimensions.
func (r *Renderer) ResizeGraphic(gr *graphic.Graphic, pixels []byte, width int) error {
	if err := gr.Resize(pixels, width); err != nil {
		return err
	}
	r.cache.texture = gr
	return nil
}

// ReleaseGraphic closes gr and forgets it if bound. Closing gr directly is
// equivalent.
func (r *Renderer) ReleaseGraphic(gr *graphic.Graphic) {
	if r.cache.texture == gr {
		r.cache.texture = nil
	}
	gr.Close()
}
