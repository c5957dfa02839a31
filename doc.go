// Package window opens a native window and draws indexed, interleaved
// geometry into it with a small set of capability-described shaders.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/window"
//	    "github.com/gogpu/window/mat4"
//	    "github.com/gogpu/window/shader"
//	    _ "github.com/gogpu/window/surface/glfw"
//	)
//
//	w, err := window.New("demo", window.WithSize(800, 600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	sh := w.MustShader(shader.Config{Gradient: true, Vertex: vs, Fragment: fs})
//	tri, _ := w.BuildGeometry(sh).Vertices(verts).Face(mat4.Identity()).Finish()
//	g, _ := w.Upload(sh, tri)
//
//	_ = w.Run(func() error {
//	    return w.Draw(sh, g)
//	})
//
// # Architecture
//
// The façade ties together:
//
//   - mat4: 4×4 transforms (scale, translate, quaternion rotate, perspective)
//   - shader: capability records, YAML shader sets, program compilation
//   - geometry: shape builder with vertex deduplication, batched groups
//   - graphic: RGBA8 textures with mip chains and a CPU mirror
//   - render: the draw-state cache that skips redundant GPU calls
//   - surface: native window backends behind a registry
//   - gpu: the command interface, with gpu/opengl and gpu/noop devices
//
// # Logging
//
// Nothing is logged until SetLogger is called. Every sub-package shares
// that logger.
//
// # Threading
//
// A Window, and everything created from it, belongs to the goroutine that
// created it. Native backends additionally require that goroutine to be
// the main thread.
package window
