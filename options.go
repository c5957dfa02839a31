package window

import "github.com/gogpu/window/gpu"

// Option configures a Window during creation.
//
// Example:
//
//	w, err := window.New("demo",
//	    window.WithSize(1280, 720),
//	    window.WithBackground(0.1, 0.1, 0.1),
//	)
type Option func(*options)

// options holds optional configuration for Window creation.
type options struct {
	width, height int
	surface       string
	vsync         bool
	background    [3]float32
	device        gpu.Device
}

// defaultOptions returns the default window options.
func defaultOptions() options {
	return options{
		width:  800,
		height: 600,
		vsync:  true,
	}
}

// WithSize sets the initial window size in screen coordinates.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithSurface selects a surface backend by name instead of the best
// available one. Backends that are never chosen automatically, such as
// "headless", need this.
func WithSurface(name string) Option {
	return func(o *options) {
		o.surface = name
	}
}

// WithVSync turns presentation synchronization with the display on or
// off. It is on by default.
func WithVSync(on bool) Option {
	return func(o *options) {
		o.vsync = on
	}
}

// WithBackground sets the initial clear color. The default is black.
func WithBackground(r, g, b float32) Option {
	return func(o *options) {
		o.background = [3]float32{r, g, b}
	}
}

// WithDevice draws through dev instead of the surface's own device.
// Useful for instrumenting a headless window.
func WithDevice(dev gpu.Device) Option {
	return func(o *options) {
		o.device = dev
	}
}
