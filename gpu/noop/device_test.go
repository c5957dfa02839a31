// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package noop

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/window/gpu"
)

func TestBufferUpload(t *testing.T) {
	d := New()
	id, err := d.CreateBuffer()
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	d.BindBuffer(gpu.TargetVertex, id)
	d.BufferData(gpu.TargetVertex, 8, []byte{1, 2})
	d.BufferSubData(gpu.TargetVertex, 4, []byte{9, 9})

	b, ok := d.Buffer(id)
	if !ok {
		t.Fatal("Buffer() not found")
	}
	want := []byte{1, 2, 0, 0, 9, 9, 0, 0}
	if string(b.Data) != string(want) {
		t.Errorf("Data = %v, want %v", b.Data, want)
	}

	d.DeleteBuffer(id)
	if d.Live() != 0 {
		t.Errorf("Live() = %d after delete, want 0", d.Live())
	}
}

func TestProgramLifecycle(t *testing.T) {
	d := New()
	vs, _ := d.CompileShader(gpu.StageVertex, "void main(){}")
	fs, _ := d.CompileShader(gpu.StageFragment, "void main(){}")
	p, _ := d.CreateProgram()
	d.AttachShader(p, vs)
	d.AttachShader(p, fs)

	if loc := d.UniformLocation(p, "tint"); loc != -1 {
		t.Errorf("UniformLocation before link = %d, want -1", loc)
	}
	if err := d.LinkProgram(p); err != nil {
		t.Fatalf("LinkProgram() error = %v", err)
	}

	loc := d.UniformLocation(p, "tint")
	if again := d.UniformLocation(p, "tint"); again != loc {
		t.Errorf("UniformLocation not stable: %d then %d", loc, again)
	}
	d.UseProgram(p)
	d.Uniform4f(loc, [4]float32{1, 0, 0, 1})

	prog, _ := d.Program(p)
	v, ok := prog.Uniform("tint")
	if !ok || len(v) != 4 || v[0] != 1 {
		t.Errorf("Uniform(tint) = %v, %v", v, ok)
	}
}

func TestFailureInjection(t *testing.T) {
	d := New()
	d.CompileFailures = map[gpu.Stage]string{gpu.StageFragment: "0:1: syntax error"}

	if _, err := d.CompileShader(gpu.StageVertex, "x"); err != nil {
		t.Errorf("vertex compile error = %v, want nil", err)
	}
	_, err := d.CompileShader(gpu.StageFragment, "x")
	var se *gpu.StatusError
	if !errors.As(err, &se) || se.Log != "0:1: syntax error" {
		t.Errorf("fragment compile error = %v, want StatusError with log", err)
	}

	d.CreateErr = ErrInjected
	if _, err := d.CreateTexture(); !errors.Is(err, ErrInjected) {
		t.Errorf("CreateTexture() error = %v, want ErrInjected", err)
	}
}

func TestCallCounting(t *testing.T) {
	d := New()
	d.SetBlend(true)
	d.SetBlend(false)
	d.DrawElements(gputypes.PrimitiveTopologyTriangleList, 6)

	if got := d.Calls("SetBlend"); got != 2 {
		t.Errorf("Calls(SetBlend) = %d, want 2", got)
	}
	if got := d.Draws(); len(got) != 1 || got[0] != 6 {
		t.Errorf("Draws() = %v, want [6]", got)
	}
	d.ResetCalls()
	if len(d.Log()) != 0 {
		t.Errorf("Log() after ResetCalls = %v", d.Log())
	}
}
