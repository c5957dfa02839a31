// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mat4

import (
	"math"
	"testing"
)

const eps = 1e-5

func vecApprox(a, b [3]float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func TestIdentityMulVec3(t *testing.T) {
	vs := [][3]float32{
		{0, 0, 0},
		{1, 2, 3},
		{-4.5, 1e3, -0.25},
	}
	id := Identity()
	for _, v := range vs {
		if got := id.MulVec3(v); got != v {
			t.Errorf("Identity().MulVec3(%v) = %v, want %v", v, got, v)
		}
	}
}

func TestScaleTranslate(t *testing.T) {
	tr := Identity().Scale(2, 3, 4).Translate(1, -1, 0.5)
	got := tr.MulVec3([3]float32{1, 1, 1})
	want := [3]float32{3, 2, 4.5}
	if got != want {
		t.Errorf("MulVec3 = %v, want %v", got, want)
	}
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if tr.IsIdentity() {
		t.Error("scaled transform reported as identity")
	}
}

func TestMulAssociative(t *testing.T) {
	a := Identity().Rotate(0, 0, 1, 0.125).Translate(1, 2, 3)
	b := Identity().Scale(2, 0.5, 1).Rotate(1, 1, 0, 0.3)
	vs := [][3]float32{{1, 0, 0}, {0.5, -2, 7}, {-3, 3, -3}}
	for _, v := range vs {
		lhs := a.Mul(b).MulVec3(v)
		rhs := a.MulVec3(b.MulVec3(v))
		if !vecApprox(lhs, rhs) {
			t.Errorf("(A*B)*%v = %v, A*(B*v) = %v", v, lhs, rhs)
		}
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name   string
		axis   [3]float32
		cycles float32
		in     [3]float32
		want   [3]float32
	}{
		{"quarter turn z", [3]float32{0, 0, 1}, 0.25, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{"half turn y", [3]float32{0, 2, 0}, 0.5, [3]float32{1, 0, 0}, [3]float32{-1, 0, 0}},
		{"full turn", [3]float32{1, 1, 1}, 1, [3]float32{1, 2, 3}, [3]float32{1, 2, 3}},
		{"zero cycles", [3]float32{1, 0, 0}, 0, [3]float32{1, 2, 3}, [3]float32{1, 2, 3}},
		{"zero axis", [3]float32{0, 0, 0}, 0.3, [3]float32{1, 2, 3}, [3]float32{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Identity().Rotate(tt.axis[0], tt.axis[1], tt.axis[2], tt.cycles)
			if got := r.MulVec3(tt.in); !vecApprox(got, tt.want) {
				t.Errorf("MulVec3(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateFullTurn(t *testing.T) {
	axes := [][3]float32{{1, 0, 0}, {0, 1, 0}, {0.3, -0.7, 2}}
	for _, a := range axes {
		full := Identity().Rotate(a[0], a[1], a[2], 1)
		none := Identity().Rotate(a[0], a[1], a[2], 0)
		if !full.Approx(none, eps) {
			t.Errorf("Rotate(%v, 1) = %v, want ≈ Rotate(%v, 0)", a, full.Array(), a)
		}
	}
}

func TestRotateRightMultiplies(t *testing.T) {
	base := Identity().Translate(5, 0, 0)
	r := base.Rotate(0, 0, 1, 0.25)
	// The rotation applies first, then the translation.
	got := r.MulVec3([3]float32{1, 0, 0})
	want := [3]float32{5, 1, 0}
	if !vecApprox(got, want) {
		t.Errorf("MulVec3 = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	p := Perspective(0.125, 0.75, 0.1, 100)
	a := p.Array()

	f := float32(1 / math.Tan(0.125*math.Pi))
	want := map[int]float32{
		0:  f * 0.75,
		5:  f,
		10: (100 + 0.1) / (0.1 - 100),
		11: -1,
		14: 2 * 100 * 0.1 / (0.1 - 100),
	}
	for i, v := range a {
		w := want[i]
		if math.Abs(float64(v-w)) > eps {
			t.Errorf("Perspective[%d] = %v, want %v", i, v, w)
		}
	}
	if a[15] != 0 {
		t.Errorf("Perspective[15] = %v, want 0", a[15])
	}
}

func TestFromArrayRoundTrip(t *testing.T) {
	var a [16]float32
	for i := range a {
		a[i] = float32(i)
	}
	tr := FromArray(a)
	if tr.Array() != a {
		t.Errorf("Array() = %v, want %v", tr.Array(), a)
	}
	// Column-major: element (row 1, col 3) is index 13.
	if got := tr.At(1, 3); got != 13 {
		t.Errorf("At(1, 3) = %v, want 13", got)
	}
}
