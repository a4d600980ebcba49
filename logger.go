package palette

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for palette and the gg drawing surface
// underneath it. By default nothing is logged.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by palette:
//   - [slog.LevelDebug]: per-call diagnostics (image sources, frame timing)
//   - [slog.LevelWarn]: recoverable issues (skipped path opcodes in lenient
//     mode, late animation frames)
//
// Example:
//
//	palette.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
		loggerPtr.Store(l)
		gg.SetLogger(nil)
		return
	}
	loggerPtr.Store(l)
	gg.SetLogger(l.With("component", "gg"))
}

// Logger returns the current logger used by palette.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
