// Command windemo opens a window with a spinning gradient cube and a pair
// of textured sprites.
//
// Usage:
//
//	windemo [-width 800] [-height 600] [-shaders set.yaml [-watch]] [-v]
//
// With -watch, edits to the shader set (or to source files next to it) are
// recompiled on the fly. Escape closes the window.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/window"
	"github.com/gogpu/window/internal/demo"
	_ "github.com/gogpu/window/surface/glfw"
)

// errDone ends the frame loop after -frames frames.
var errDone = errors.New("done")

func main() {
	var (
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		backend = flag.String("surface", "", "surface backend (default: best available)")
		shaders = flag.String("shaders", "", "YAML shader set (default: built in)")
		watch   = flag.Bool("watch", false, "reload -shaders when its directory changes")
		frames  = flag.Int("frames", 0, "exit after this many frames (0: until closed)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	window.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	set, err := demo.LoadShaders(*shaders)
	if err != nil {
		log.Fatalf("Failed to load shaders: %v", err)
	}

	opts := []window.Option{
		window.WithSize(*width, *height),
		window.WithBackground(0.08, 0.09, 0.12),
	}
	if *backend != "" {
		opts = append(opts, window.WithSurface(*backend))
	}
	w, err := window.New("windemo", opts...)
	if err != nil {
		log.Fatalf("Failed to open window: %v", err)
	}
	defer func() { _ = w.Close() }()

	sc, err := demo.NewScene(w, set)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	defer sc.Release()

	var reload <-chan struct{}
	if *watch && *shaders != "" {
		changes, stop, err := demo.Watch(*shaders)
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", *shaders, err)
		}
		defer stop()
		reload = changes
	}

	n := 0
	err = w.Run(func() error {
		select {
		case <-reload:
			next, err := demo.LoadShaders(*shaders)
			if err != nil {
				window.Logger().Warn("windemo: reload failed", "err", err)
				break
			}
			sc.SwapShaders(next)
		default:
		}

		if err := sc.Draw(); err != nil {
			return err
		}
		n++
		if *frames > 0 && n >= *frames {
			return errDone
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDone) {
		log.Fatalf("Render failed: %v", err)
	}
	window.Logger().Info("windemo: exit", "frames", n, "last", w.Stats())
}
