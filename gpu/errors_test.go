// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"testing"
)

func TestDeviceError(t *testing.T) {
	inner := errors.New("out of memory")
	err := error(&DeviceError{Op: "create texture", Err: inner})

	if !errors.Is(err, ErrDevice) {
		t.Error("errors.Is(err, ErrDevice) = false")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is(err, inner) = false")
	}
	if got, want := err.Error(), "gpu: create texture: out of memory"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := (&DeviceError{Op: "create buffer"}).Error(), "gpu: create buffer failed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		s    Stage
		want string
	}{
		{StageVertex, "vertex"},
		{StageFragment, "fragment"},
		{Stage(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestFloatFormatComponentCount(t *testing.T) {
	for n := 1; n <= 4; n++ {
		if got := ComponentCount(FloatFormat(n)); got != n {
			t.Errorf("ComponentCount(FloatFormat(%d)) = %d", n, got)
		}
	}
}
