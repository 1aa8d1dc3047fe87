package bmesh

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all records. Enabled reports
// false so callers skip building attributes entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by bmesh and its sub-packages.
// bmesh is silent by default. Passing nil restores the silent logger.
// SetLogger is safe for concurrent use.
//
// Levels used:
//   - [slog.LevelDebug]: deletion sweep and recycle counts, weld results.
//   - [slog.LevelWarn]: element pool exhaustion, right before the panic.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current bmesh logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
