// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/internal/logx"
	"github.com/gogpu/window/mat4"
	"github.com/gogpu/window/shader"
)

// minBufferBytes is the smallest GPU allocation a group makes.
const minBufferBytes = 256

// Region maps texture coordinates into a sub-rectangle of a texture:
// uv' = uv*Scale + Translate.
type Region struct {
	Translate [2]float32
	Scale     [2]float32
}

// FullRegion covers the whole texture.
var FullRegion = Region{Scale: [2]float32{1, 1}}

// Group is a shared vertex and index buffer that many shapes are pushed
// into, so that one draw call renders all of them.
//
// Data is appended on the CPU and uploaded lazily by Sync, which the
// renderer calls while the group's buffers are bound. GPU storage grows by
// doubling; data already uploaded is not sent again.
type Group struct {
	dev       gpu.Device
	caps      shader.Capabilities
	stride    int
	vertices  []float32
	indices   []uint32
	instances []mat4.Transform

	vbo, ibo       gpu.BufferID
	vboLen, vboCap int
	iboLen, iboCap int
}

// NewGroup allocates the vertex and index buffers of an empty group.
func NewGroup(dev gpu.Device, caps shader.Capabilities) (*Group, error) {
	vbo, err := dev.CreateBuffer()
	if err != nil {
		return nil, wrapDevice("create vertex buffer", err)
	}
	ibo, err := dev.CreateBuffer()
	if err != nil {
		dev.DeleteBuffer(vbo)
		return nil, wrapDevice("create index buffer", err)
	}
	return &Group{
		dev:    dev,
		caps:   caps,
		stride: caps.Stride(),
		vbo:    vbo,
		ibo:    ibo,
	}, nil
}

func wrapDevice(op string, err error) error {
	var de *gpu.DeviceError
	if errors.As(err, &de) {
		return err
	}
	return &gpu.DeviceError{Op: op, Err: err}
}

// Push appends s with its positions transformed by t.
func (g *Group) Push(s *Shape, t mat4.Transform) error {
	return g.push(s, t, nil)
}

// PushRegion appends s with its positions transformed by t and its texture
// coordinates remapped into r.
func (g *Group) PushRegion(s *Shape, t mat4.Transform, r Region) error {
	if !g.caps.Graphic {
		return ErrNoTexCoords
	}
	return g.push(s, t, &r)
}

func (g *Group) push(s *Shape, t mat4.Transform, r *Region) error {
	if g.Closed() {
		return ErrGroupClosed
	}
	if !sameLayout(s.caps, g.caps) {
		return &LayoutMismatchError{Group: g.caps, Shape: s.caps}
	}

	base := uint32(len(g.vertices) / g.stride)
	dims := g.caps.Dims()
	uv := dims + g.caps.Components()
	identity := t.IsIdentity()

	start := len(g.vertices)
	g.vertices = append(g.vertices, s.vertices...)
	for off := start; off < len(g.vertices); off += g.stride {
		rec := g.vertices[off : off+g.stride]
		if !identity {
			var p [3]float32
			copy(p[:dims], rec[:dims])
			p = t.MulVec3(p)
			copy(rec[:dims], p[:dims])
		}
		if r != nil {
			rec[uv] = rec[uv]*r.Scale[0] + r.Translate[0]
			rec[uv+1] = rec[uv+1]*r.Scale[1] + r.Translate[1]
		}
	}
	for _, i := range s.indices {
		g.indices = append(g.indices, base+i)
	}
	return nil
}

// SetInstances replaces the per-instance transforms. Shaders with
// instance slots receive them as a matrix array on every draw.
func (g *Group) SetInstances(ts []mat4.Transform) {
	g.instances = append(g.instances[:0], ts...)
}

// Instances returns the per-instance transforms.
func (g *Group) Instances() []mat4.Transform { return g.instances }

// InstanceMatrices returns the instance transforms in upload form. A group
// without instances yields the identity.
func (g *Group) InstanceMatrices() [][16]float32 {
	if len(g.instances) == 0 {
		return [][16]float32{mat4.Identity().Array()}
	}
	m := make([][16]float32, len(g.instances))
	for i, t := range g.instances {
		m[i] = t.Array()
	}
	return m
}

// ID identifies the group's geometry; it is the vertex buffer id.
func (g *Group) ID() gpu.BufferID { return g.vbo }

// Buffers returns the vertex and index buffer ids.
func (g *Group) Buffers() (vertex, index gpu.BufferID) { return g.vbo, g.ibo }

// Capabilities returns the layout of the group.
func (g *Group) Capabilities() shader.Capabilities { return g.caps }

// Stride returns the number of floats per vertex record.
func (g *Group) Stride() int { return g.stride }

// Len returns the number of indices.
func (g *Group) Len() int { return len(g.indices) }

// VertexCount returns the number of vertex records.
func (g *Group) VertexCount() int { return len(g.vertices) / g.stride }

// Vertices returns the CPU copy of the vertex data. Callers must not
// modify it.
func (g *Group) Vertices() []float32 { return g.vertices }

// Indices returns the CPU copy of the index data. Callers must not modify
// it.
func (g *Group) Indices() []uint32 { return g.indices }

// Pending reports whether data has been pushed since the last Sync.
func (g *Group) Pending() bool {
	return g.vboLen != 4*len(g.vertices) || g.iboLen != 4*len(g.indices)
}

// Sync uploads pending data. The group's vertex and index buffers must be
// bound to their targets.
func (g *Group) Sync() {
	if g.Closed() {
		return
	}
	g.vboLen, g.vboCap = g.upload(gpu.TargetVertex, len(g.vertices), g.vboLen, g.vboCap, func(from int) []byte {
		return encodeFloats(g.vertices[from:])
	})
	g.iboLen, g.iboCap = g.upload(gpu.TargetIndex, len(g.indices), g.iboLen, g.iboCap, func(from int) []byte {
		return encodeIndices(g.indices[from:])
	})
}

// upload sends the elements past uploaded bytes, reallocating with doubled
// capacity when they do not fit. It returns the new uploaded length and
// capacity, both in bytes.
func (g *Group) upload(target gputypes.BufferUsage, n, uploaded, capacity int, encode func(from int) []byte) (int, int) {
	size := 4 * n
	if size == uploaded {
		return uploaded, capacity
	}
	if size > capacity {
		grown := max(2*capacity, size, minBufferBytes)
		g.dev.BufferData(target, grown, encode(0))
		logx.L().Debug("geometry: buffer grown", "target", target, "bytes", grown)
		return size, grown
	}
	g.dev.BufferSubData(target, uploaded, encode(uploaded/4))
	return size, capacity
}

// Closed reports whether Close has been called.
func (g *Group) Closed() bool { return g.vbo == gpu.InvalidID }

// Close releases both GPU buffers. It is safe to call more than once.
func (g *Group) Close() {
	if g.Closed() {
		return
	}
	g.dev.DeleteBuffer(g.vbo)
	g.dev.DeleteBuffer(g.ibo)
	g.vbo, g.ibo = gpu.InvalidID, gpu.InvalidID
	g.vertices, g.indices = nil, nil
}

func encodeFloats(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func encodeIndices(v []uint32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], x)
	}
	return buf
}
