// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"

	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/internal/logx"
)

// Locations holds the uniform locations resolved for a shader. Absent
// uniforms are -1.
type Locations struct {
	Instances []int32
	Camera    int32
	Tint      int32
	Translate int32
	Scale     int32
	Sampler   int32
}

// Shader is a linked program plus its capability record.
//
// A Shader owns its program; Close releases it. Draw calls reference a
// Shader by pointer and never copy it.
type Shader struct {
	dev     gpu.Device
	program gpu.ProgramID
	caps    Capabilities
	names   Names
	loc     Locations
}

// Compile builds a program for cfg.
//
// Attribute slots are bound before linking: position always, color only
// with a gradient, texture coordinates only with a graphic. After linking
// every uniform implied by the capabilities must resolve.
//
// Compile and link failures return *CompileError and *LinkError, missing
// uniforms *MissingUniformError. Nothing is leaked on failure.
func Compile(dev gpu.Device, cfg Config) (*Shader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	names := cfg.Names.withDefaults()

	vs, err := compileStage(dev, gpu.StageVertex, cfg.Vertex)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vs)

	fs, err := compileStage(dev, gpu.StageFragment, cfg.Fragment)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fs)

	program, err := dev.CreateProgram()
	if err != nil {
		return nil, deviceError("create program", err)
	}
	dev.AttachShader(program, vs)
	dev.AttachShader(program, fs)

	dev.BindAttribLocation(program, gpu.SlotPosition, names.Position)
	if cfg.Gradient {
		dev.BindAttribLocation(program, gpu.SlotColor, names.Color)
	}
	if cfg.Graphic {
		dev.BindAttribLocation(program, gpu.SlotTexCoord, names.TexCoord)
	}

	if err := dev.LinkProgram(program); err != nil {
		dev.DeleteProgram(program)
		var se *gpu.StatusError
		if errors.As(err, &se) {
			return nil, &LinkError{Log: se.Log}
		}
		return nil, deviceError("link program", err)
	}

	s := &Shader{
		dev:     dev,
		program: program,
		caps:    cfg.Capabilities(),
		names:   names,
	}
	if err := s.resolve(); err != nil {
		dev.DeleteProgram(program)
		return nil, err
	}
	s.setDefaults()

	logx.L().Debug("shader: compiled",
		"program", program,
		"depth", cfg.Depth, "gradient", cfg.Gradient, "graphic", cfg.Graphic,
		"tint", cfg.Tint, "blend", cfg.Blend, "instances", cfg.Instances)
	return s, nil
}

// MustCompile is like Compile but panics on error. It is meant for
// application startup, where a broken shader is not recoverable.
func MustCompile(dev gpu.Device, cfg Config) *Shader {
	s, err := Compile(dev, cfg)
	if err != nil {
		panic(err)
	}
	return s
}

func compileStage(dev gpu.Device, stage gpu.Stage, src string) (gpu.ShaderID, error) {
	id, err := dev.CompileShader(stage, src)
	if err == nil {
		return id, nil
	}
	var se *gpu.StatusError
	if errors.As(err, &se) {
		return gpu.InvalidID, &CompileError{Stage: stage, Log: se.Log}
	}
	return gpu.InvalidID, deviceError("compile shader", err)
}

func (s *Shader) resolve() error {
	lookup := func(name string, required bool) (int32, error) {
		loc := s.dev.UniformLocation(s.program, name)
		if loc < 0 && required {
			return -1, &MissingUniformError{Name: name}
		}
		return loc, nil
	}

	l := Locations{Camera: -1, Tint: -1, Translate: -1, Scale: -1, Sampler: -1}
	var err error
	for i := 0; i < s.caps.Instances; i++ {
		loc, err := lookup(s.names.InstanceName(i), true)
		if err != nil {
			return err
		}
		l.Instances = append(l.Instances, loc)
	}
	if s.caps.Depth {
		if l.Camera, err = lookup(s.names.Camera, true); err != nil {
			return err
		}
	}
	if s.caps.Tint {
		if l.Tint, err = lookup(s.names.Tint, true); err != nil {
			return err
		}
	}
	if s.caps.Graphic {
		if l.Translate, err = lookup(s.names.Translate, true); err != nil {
			return err
		}
		if l.Scale, err = lookup(s.names.Scale, true); err != nil {
			return err
		}
		l.Sampler, _ = lookup(s.names.Sampler, false)
	}
	s.loc = l
	return nil
}

// setDefaults leaves the program in use with an identity atlas region,
// an opaque white tint and the sampler on unit 0.
func (s *Shader) setDefaults() {
	if !s.caps.Tint && !s.caps.Graphic {
		return
	}
	s.dev.UseProgram(s.program)
	if s.caps.Tint {
		s.dev.Uniform4f(s.loc.Tint, [4]float32{1, 1, 1, 1})
	}
	if s.caps.Graphic {
		s.dev.Uniform2f(s.loc.Translate, [2]float32{0, 0})
		s.dev.Uniform2f(s.loc.Scale, [2]float32{1, 1})
		if s.loc.Sampler >= 0 {
			s.dev.Uniform1i(s.loc.Sampler, 0)
		}
	}
}

// Program returns the program id, or gpu.InvalidID after Close.
func (s *Shader) Program() gpu.ProgramID { return s.program }

// Capabilities returns the capability record.
func (s *Shader) Capabilities() Capabilities { return s.caps }

// Locations returns the resolved uniform locations.
func (s *Shader) Locations() Locations {
	l := s.loc
	l.Instances = append([]int32(nil), s.loc.Instances...)
	return l
}

// InstanceSlots returns the instance-transform uniform locations. Callers
// must not modify the slice.
func (s *Shader) InstanceSlots() []int32 { return s.loc.Instances }

// Names returns the attribute and uniform names in effect.
func (s *Shader) Names() Names { return s.names }

// Closed reports whether Close has been called.
func (s *Shader) Closed() bool { return s.program == gpu.InvalidID }

// Close releases the program. It is safe to call more than once.
func (s *Shader) Close() {
	if s.program == gpu.InvalidID {
		return
	}
	s.dev.DeleteProgram(s.program)
	s.program = gpu.InvalidID
}
