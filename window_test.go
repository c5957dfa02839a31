package window

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/window/gpu"
	"github.com/gogpu/window/gpu/noop"
	"github.com/gogpu/window/mat4"
	"github.com/gogpu/window/shader"
	"github.com/gogpu/window/surface"
)

func flatConfig() shader.Config {
	return shader.Config{Vertex: "void main() {}", Fragment: "void main() {}"}
}

func newTestWindow(t *testing.T, opts ...Option) *Window {
	t.Helper()
	w, err := New("test", append([]Option{WithSurface(surface.HeadlessName)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func headless(t *testing.T, w *Window) *surface.Headless {
	t.Helper()
	h, ok := w.Surface().(*surface.Headless)
	if !ok {
		t.Fatalf("surface = %T, want *surface.Headless", w.Surface())
	}
	return h
}

var triangle = []float32{0, 0, 1, 0, 0, 1}

func TestNewHeadless(t *testing.T) {
	w := newTestWindow(t, WithSize(400, 300), WithBackground(0.2, 0.4, 0.6))

	if width, height := w.Size(); width != 400 || height != 300 {
		t.Errorf("Size() = %dx%d, want 400x300", width, height)
	}
	if got := w.Aspect(); got != 0.75 {
		t.Errorf("Aspect() = %v, want 0.75", got)
	}
	c := headless(t, w).Recorder().ClearValue()
	if float32(c.R) != 0.2 || float32(c.G) != 0.4 || float32(c.B) != 0.6 {
		t.Errorf("clear color = %+v", c)
	}
}

func TestNewWithoutNativeBackend(t *testing.T) {
	// Only the headless backend is linked into this test binary and it is
	// never chosen automatically.
	_, err := New("test")
	if !errors.Is(err, surface.ErrNoBackendAvailable) {
		t.Errorf("New() error = %v, want ErrNoBackendAvailable", err)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("test", WithSurface("vulkan"))
	var nf *surface.BackendNotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("New() error = %v, want BackendNotFoundError", err)
	}
}

func TestWithDevice(t *testing.T) {
	dev := noop.New()
	w := newTestWindow(t, WithDevice(dev))
	sh := w.MustShader(flatConfig())
	if _, ok := dev.Program(sh.Program()); !ok {
		t.Error("shader was not compiled on the injected device")
	}
	if headless(t, w).Recorder().Calls("CreateProgram") != 0 {
		t.Error("surface device was used despite WithDevice")
	}
}

func TestRunDrawsFrames(t *testing.T) {
	w := newTestWindow(t)
	h := headless(t, w)
	h.Limit(3)

	sh := w.MustShader(flatConfig())
	s, err := w.BuildGeometry(sh).Vertices(triangle).Face(mat4.Identity()).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	g, err := w.Upload(sh, s, s)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	var frames int
	err = w.Run(func() error {
		frames++
		return w.Draw(sh, g)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if frames != 3 || h.Frames() != 3 {
		t.Errorf("frames = %d, presented = %d; want 3, 3", frames, h.Frames())
	}
	if d := h.Recorder().Draws(); len(d) != 3 || d[0] != 6 {
		t.Errorf("Draws = %v, want three draws of 6 indices", d)
	}

	st := w.Stats()
	if st.DrawCalls != 1 || st.ProgramBinds != 0 {
		t.Errorf("last frame stats = %+v, want 1 draw and no program rebind", st)
	}
}

func TestRunStopsOnError(t *testing.T) {
	w := newTestWindow(t)
	h := headless(t, w)
	errStop := errors.New("stop")

	err := w.Run(func() error { return errStop })
	if !errors.Is(err, errStop) {
		t.Fatalf("Run() error = %v, want %v", err, errStop)
	}
	if h.Frames() != 0 {
		t.Errorf("presented %d frames, want 0", h.Frames())
	}
}

func TestRunStopsOnDeviceError(t *testing.T) {
	w := newTestWindow(t)
	h := headless(t, w)
	h.Limit(3)
	errLost := errors.New("context lost")

	frames := 0
	err := w.Run(func() error {
		frames++
		if frames == 2 {
			h.Recorder().QueuedErr = errLost
		}
		return nil
	})
	if !errors.Is(err, gpu.ErrDevice) || !errors.Is(err, errLost) {
		t.Fatalf("Run() error = %v, want device error wrapping %v", err, errLost)
	}
	if frames != 2 || h.Frames() != 1 {
		t.Errorf("ran %d frames and presented %d, want 2 and 1", frames, h.Frames())
	}
}

func TestRunFollowsResize(t *testing.T) {
	w := newTestWindow(t)
	h := headless(t, w)
	h.Limit(1)
	h.Resize(100, 50)

	if err := w.Run(func() error { return nil }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if width, height := w.Size(); width != 100 || height != 50 {
		t.Errorf("Size() = %dx%d, want 100x50", width, height)
	}
	if got := h.Recorder().Calls("Viewport"); got != 2 {
		t.Errorf("Viewport calls = %d, want 2", got)
	}
}

func TestUploadImageAndDraw(t *testing.T) {
	w := newTestWindow(t)
	h := headless(t, w)
	h.Limit(1)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	gr, err := w.UploadImage(img)
	if err != nil {
		t.Fatalf("UploadImage() error = %v", err)
	}
	if gr.Width() != 4 || gr.Levels() != 2 {
		t.Errorf("Width, Levels = %d, %d; want 4, 2", gr.Width(), gr.Levels())
	}

	cfg := flatConfig()
	cfg.Graphic = true
	sh := w.MustShader(cfg)
	quad := []float32{
		0, 0, 0, 0, 1, 0, 1, 0, 1, 1, 1, 1,
		0, 0, 0, 0, 1, 1, 1, 1, 0, 1, 0, 1,
	}
	s, err := w.BuildGeometry(sh).Vertices(quad).Face(mat4.Identity()).Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	g, err := w.Upload(sh, s)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if err := w.Run(func() error { return w.DrawGraphic(sh, g, gr) }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.Recorder().BoundTexture() != gr.ID() {
		t.Error("graphic not bound after draw")
	}

	w.ReleaseGraphic(gr)
	w.ReleaseGroup(g)
	w.ReleaseShader(sh)
	if live := h.Recorder().Live(); live != 0 {
		t.Errorf("Live() = %d after releasing everything, want 0", live)
	}
}

func TestNewShadersReleasesOnFailure(t *testing.T) {
	w := newTestWindow(t)
	rec := headless(t, w).Recorder()

	set := map[string]shader.Config{
		"a": flatConfig(),
		"b": {Vertex: "void main() {}"},
	}
	_, err := w.NewShaders(set)
	if !errors.Is(err, shader.ErrInvalidConfig) {
		t.Fatalf("NewShaders() error = %v, want ErrInvalidConfig", err)
	}
	if live := rec.Live(); live != 0 {
		t.Errorf("Live() = %d, want 0", live)
	}

	set["b"] = flatConfig()
	got, err := w.NewShaders(set)
	if err != nil {
		t.Fatalf("NewShaders() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestMustShaderPanics(t *testing.T) {
	w := newTestWindow(t)
	defer func() {
		if recover() == nil {
			t.Error("MustShader did not panic on an invalid config")
		}
	}()
	w.MustShader(shader.Config{})
}

func TestClose(t *testing.T) {
	w := newTestWindow(t)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if err := w.Run(func() error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after Close error = %v, want ErrClosed", err)
	}
}
