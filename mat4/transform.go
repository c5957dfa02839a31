// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mat4 provides the 4x4 float32 Transform used for vertex
// positions, cameras and per-instance placement.
//
// Transforms are immutable values. Storage is column-major, which is what
// GL uniform uploads expect without transposition:
//
//	| m0 m4 m8  m12 |
//	| m1 m5 m9  m13 |
//	| m2 m6 m10 m14 |
//	| m3 m7 m11 m15 |
//
// Products follow the usual algebra: a.Mul(b).MulVec3(v) equals
// a.MulVec3(b.MulVec3(v)).
package mat4

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a 4x4 transformation matrix.
type Transform struct {
	m mgl32.Mat4
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: mgl32.Ident4()}
}

// FromArray builds a Transform from 16 column-major values.
func FromArray(a [16]float32) Transform {
	return Transform{m: mgl32.Mat4(a)}
}

// Array returns the 16 column-major values of t.
func (t Transform) Array() [16]float32 {
	return [16]float32(t.m)
}

// At returns the element at row, col.
func (t Transform) At(row, col int) float32 {
	return t.m.At(row, col)
}

// Scale multiplies the diagonal by x, y and z.
func (t Transform) Scale(x, y, z float32) Transform {
	t.m[0] *= x
	t.m[5] *= y
	t.m[10] *= z
	return t
}

// Translate adds x, y and z to the translation column.
func (t Transform) Translate(x, y, z float32) Transform {
	t.m[12] += x
	t.m[13] += y
	t.m[14] += z
	return t
}

// Rotate returns t multiplied on the right by a rotation around the axis
// (x, y, z). cycles is measured in full turns: 1.0 rotates by 2π.
//
// The axis does not need to be normalized. A zero axis leaves t unchanged.
func (t Transform) Rotate(x, y, z, cycles float32) Transform {
	axis := mgl32.Vec3{x, y, z}
	l := axis.Len()
	if l == 0 {
		return t
	}
	axis = axis.Mul(1 / l)

	half := cycles * math32.Pi
	s := math32.Sin(half)
	q := mgl32.Quat{W: math32.Cos(half), V: axis.Mul(s)}
	return Transform{m: t.m.Mul4(q.Mat4())}
}

// Perspective returns a perspective projection. fovy is the vertical field
// of view in cycles (0.25 is a 90 degree view) and aspect is height/width.
func Perspective(fovy, aspect, near, far float32) Transform {
	f := 1 / math32.Tan(fovy*math32.Pi)
	depth := near - far

	var m mgl32.Mat4
	m[0] = f * aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return Transform{m: m}
}

// Mul returns the product t * b.
func (t Transform) Mul(b Transform) Transform {
	return Transform{m: t.m.Mul4(b.m)}
}

// MulVec3 applies t to the point v (w = 1) and drops the resulting w.
func (t Transform) MulVec3(v [3]float32) [3]float32 {
	r := t.m.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 1})
	return [3]float32{r[0], r[1], r[2]}
}

// Approx reports whether every element of t is within eps of b.
func (t Transform) Approx(b Transform, eps float32) bool {
	return t.m.ApproxEqualThreshold(b.m, eps)
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t.m == mgl32.Ident4()
}
