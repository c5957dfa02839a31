// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geometry

import (
	"math"

	"github.com/chewxy/math32"
)

const (
	// epsilon is the float32 machine epsilon.
	epsilon = 0x1p-23

	// minPositive is the smallest positive normal float32.
	minPositive = 0x1p-126
)

// NearlyEqual reports whether a and b are equal within float32 rounding.
//
// Bit-identical values (including a NaN compared with itself) and equal
// values (±0, same-signed infinities) always match.
// Near zero the comparison is absolute, elsewhere relative to |a|+|b|,
// clamped to the largest finite float32 so the sum cannot overflow.
func NearlyEqual(a, b float32) bool {
	if math.Float32bits(a) == math.Float32bits(b) || a == b {
		return true
	}
	diff := math32.Abs(a - b)
	sum := math32.Abs(a) + math32.Abs(b)
	if a == 0 || b == 0 || sum < minPositive {
		return diff < epsilon*minPositive
	}
	return diff/math32.Min(sum, math.MaxFloat32) < epsilon
}

// recordsEqual compares two records component-wise with NearlyEqual.
func recordsEqual(a, b []float32) bool {
	for i := range a {
		if !NearlyEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
