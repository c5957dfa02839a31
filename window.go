package window

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/window/geometry"
	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/graphic"
	"github.com/gogpu/window/internal/logx"
	"github.com/gogpu/window/mat4"
	"github.com/gogpu/window/render"
	"github.com/gogpu/window/shader"
	"github.com/gogpu/window/surface"
)

// ErrClosed is returned by Run on a closed window.
var ErrClosed = errors.New("window: closed")

// Window is a native window with a renderer attached. It must be used from
// the goroutine that created it.
type Window struct {
	surf   surface.Surface
	r      *render.Renderer
	width  int
	height int
	last   render.Stats
	closed bool
}

// New opens a window. Without WithSurface the best available backend is
// used; a native one must be linked in, for example:
//
//	import _ "github.com/gogpu/window/surface/glfw"
func New(title string, opts ...Option) (*Window, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	so := surface.Options{Width: o.width, Height: o.height, Title: title, VSync: o.vsync}
	var (
		s   surface.Surface
		err error
	)
	if o.surface != "" {
		s, err = surface.NewSurfaceByName(o.surface, so)
	} else {
		s, err = surface.NewSurface(so)
	}
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	s.MakeCurrent()

	dev := o.device
	if dev == nil {
		if dev, err = s.Device(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("window: %w", err)
		}
	}

	w := &Window{surf: s, r: render.New(dev)}
	w.r.SetBackground(o.background[0], o.background[1], o.background[2])
	w.syncViewport()
	return w, nil
}

// syncViewport follows the surface's drawable size.
func (w *Window) syncViewport() {
	width, height := w.surf.Size()
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height
	w.r.Viewport(width, height)
	logx.L().Debug("window: viewport", "width", width, "height", height)
}

// Surface returns the underlying surface.
func (w *Window) Surface() surface.Surface { return w.surf }

// Renderer returns the renderer that draws into the window.
func (w *Window) Renderer() *render.Renderer { return w.r }

// Device returns the GPU command interface.
func (w *Window) Device() gpu.Device { return w.r.Device() }

// Size returns the drawable size in pixels.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// Aspect returns height/width of the drawable area, for use as the aspect
// argument of mat4.Perspective.
func (w *Window) Aspect() float32 {
	if w.width == 0 {
		return 1
	}
	return float32(w.height) / float32(w.width)
}

// Background sets the clear color.
func (w *Window) Background(r, g, b float32) {
	w.r.SetBackground(r, g, b)
}

// NewShader compiles cfg.
func (w *Window) NewShader(cfg shader.Config) (*shader.Shader, error) {
	sh, err := w.r.CompileShader(cfg)
	if err != nil {
		return nil, err
	}
	logx.L().Info("window: shader compiled", "program", sh.Program(), "stride", sh.Capabilities().Stride())
	return sh, nil
}

// MustShader is like NewShader but panics on error. Use it for shaders
// embedded in the program.
func (w *Window) MustShader(cfg shader.Config) *shader.Shader {
	sh, err := w.NewShader(cfg)
	if err != nil {
		panic(err)
	}
	return sh
}

// NewShaders compiles every config in set, in name order. On failure the
// shaders compiled so far are released and the error names the config.
func (w *Window) NewShaders(set map[string]shader.Config) (map[string]*shader.Shader, error) {
	out := make(map[string]*shader.Shader, len(set))
	for _, name := range shader.SortedNames(set) {
		sh, err := w.NewShader(set[name])
		if err != nil {
			for _, done := range out {
				w.r.ReleaseShader(done)
			}
			return nil, fmt.Errorf("window: shader %q: %w", name, err)
		}
		out[name] = sh
	}
	return out, nil
}

// ReleaseShader deletes sh's program.
func (w *Window) ReleaseShader(sh *shader.Shader) { w.r.ReleaseShader(sh) }

// BuildGeometry starts a shape laid out for sh.
func (w *Window) BuildGeometry(sh *shader.Shader) *geometry.Builder {
	return geometry.NewBuilder(sh.Capabilities())
}

// NewGroup allocates an empty group laid out for sh.
func (w *Window) NewGroup(sh *shader.Shader) (*geometry.Group, error) {
	return w.r.NewGroup(sh)
}

// Upload puts shapes in a new group, one placement each at the identity
// transform.
func (w *Window) Upload(sh *shader.Shader, shapes ...*geometry.Shape) (*geometry.Group, error) {
	g, err := w.r.NewGroup(sh)
	if err != nil {
		return nil, err
	}
	for _, s := range shapes {
		if err := g.Push(s, mat4.Identity()); err != nil {
			w.r.ReleaseGroup(g)
			return nil, err
		}
	}
	return g, nil
}

// ReleaseGroup deletes g's buffers.
func (w *Window) ReleaseGroup(g *geometry.Group) { w.r.ReleaseGroup(g) }

// UploadGraphic creates a texture. pixels holds RGBA8 rows of the base
// level, optionally followed by a pre-built mip chain.
func (w *Window) UploadGraphic(pixels []byte, width, height int) (*graphic.Graphic, error) {
	return w.r.UploadGraphic(pixels, width, height)
}

// UploadImage creates a texture from img, with a generated mip chain.
func (w *Window) UploadImage(img image.Image) (*graphic.Graphic, error) {
	pixels, width, height := graphic.MipChain(img)
	return w.r.UploadGraphic(pixels, width, height)
}

// UpdateGraphic edits gr's pixels in place through fn and re-uploads them.
func (w *Window) UpdateGraphic(gr *graphic.Graphic, fn func(pixels []byte, width int)) error {
	return w.r.UpdateGraphic(gr, fn)
}

// ResizeGraphic replaces gr's pixels; the height follows from width.
func (w *Window) ResizeGraphic(gr *graphic.Graphic, pixels []byte, width int) error {
	return w.r.ResizeGraphic(gr, pixels, width)
}

// ReleaseGraphic deletes gr's texture.
func (w *Window) ReleaseGraphic(gr *graphic.Graphic) { w.r.ReleaseGraphic(gr) }

// Draw renders g with sh. Call it from the Run callback.
func (w *Window) Draw(sh *shader.Shader, g render.Geometry) error {
	return w.r.Draw(sh, g)
}

// DrawGraphic renders g with sh, sampling gr.
func (w *Window) DrawGraphic(sh *shader.Shader, g render.Geometry, gr *graphic.Graphic) error {
	return w.r.DrawGraphic(sh, g, gr)
}

// SetCamera sets sh's camera transform.
func (w *Window) SetCamera(sh *shader.Shader, t mat4.Transform) { w.r.SetCamera(sh, t) }

// SetTint sets sh's tint color.
func (w *Window) SetTint(sh *shader.Shader, rgba [4]float32) { w.r.SetTint(sh, rgba) }

// SetRegion sets sh's texture atlas remap.
func (w *Window) SetRegion(sh *shader.Shader, reg geometry.Region) { w.r.SetRegion(sh, reg) }

// Run drives the frame loop: poll events, clear, call frame, present. It
// returns nil when the surface asks to close, or the first error frame
// returns. A device error raised during the frame is returned as a
// *gpu.DeviceError and the frame is not presented.
func (w *Window) Run(frame func() error) error {
	if w.closed {
		return ErrClosed
	}
	for w.surf.Poll() {
		w.syncViewport()
		w.r.BeginFrame()
		err := frame()
		w.last = w.r.EndFrame()
		if err != nil {
			return err
		}
		if err := w.r.Check("frame"); err != nil {
			return err
		}
		w.surf.SwapBuffers()
	}
	return nil
}

// Stats returns the counters of the last finished frame.
func (w *Window) Stats() render.Stats { return w.last }

// Close destroys the window. Resources not released by then die with the
// GPU context. It is safe to call more than once.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.surf.Close()
}
