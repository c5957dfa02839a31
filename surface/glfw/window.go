// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glfw registers a native window backend built on GLFW with an
// OpenGL 3.3 core context. Import it for its side effect:
//
//	import _ "github.com/gogpu/window/surface/glfw"
//
// GLFW must be driven from the main thread; this package locks the main
// goroutine to it during init.
package glfw

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/gpu/opengl"
	"github.com/gogpu/window/surface"
)

// Name is the registry name of this backend.
const Name = "glfw"

func init() {
	runtime.LockOSThread()
	surface.Register(Name, 100, open, nil)
}

// Window is a GLFW window with a current GL context.
type Window struct {
	win *glfw.Window
	dev *opengl.Device
}

func open(opts surface.Options) (surface.Surface, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return &Window{win: win}, nil
}

// Size implements surface.Surface. It reports the framebuffer size, which
// differs from the window size on high-DPI displays.
func (w *Window) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

// MakeCurrent implements surface.Surface.
func (w *Window) MakeCurrent() {
	w.win.MakeContextCurrent()
}

// Device implements surface.Surface. The GL function pointers are loaded
// on first call, with the window's context current.
func (w *Window) Device() (gpu.Device, error) {
	if w.dev != nil {
		return w.dev, nil
	}
	w.win.MakeContextCurrent()
	dev, err := opengl.New()
	if err != nil {
		return nil, err
	}
	w.dev = dev
	return dev, nil
}

// SwapBuffers implements surface.Surface.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

// Poll implements surface.Surface.
func (w *Window) Poll() bool {
	glfw.PollEvents()
	return !w.win.ShouldClose()
}

// Close implements surface.Surface.
func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	if w.dev != nil {
		w.dev.Release()
		w.dev = nil
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	return nil
}
