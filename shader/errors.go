// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/window/gpu"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("shader: invalid config")

// CompileError reports a stage that failed to compile.
type CompileError struct {
	Stage gpu.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: compile %s stage: %s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "shader: link: " + e.Log
}

// MissingUniformError reports a uniform the configuration requires but the
// linked program does not expose. GLSL compilers drop unused uniforms, so
// this usually means the source never reads it.
type MissingUniformError struct {
	Name string
}

func (e *MissingUniformError) Error() string {
	return "shader: missing uniform " + e.Name
}

// deviceError converts a device failure into the package's taxonomy.
func deviceError(op string, err error) error {
	var de *gpu.DeviceError
	if errors.As(err, &de) {
		return err
	}
	return &gpu.DeviceError{Op: op, Err: err}
}
