package window

import (
	"log/slog"

	"github.com/gogpu/window/internal/logx"
)

// SetLogger configures the logger for window and all its sub-packages.
// By default nothing is logged. Pass nil to restore silence.
//
// SetLogger is safe for concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: per-frame draw statistics, buffer growth, mip levels
//   - [slog.LevelInfo]: surface backend opened, shader compiled
//   - [slog.LevelWarn]: uniform setters on shaders that lack the uniform,
//     backend fallbacks
//
// Example:
//
//	window.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger. It is never nil.
func Logger() *slog.Logger {
	return logx.L()
}
