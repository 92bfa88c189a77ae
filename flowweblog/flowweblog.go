// Package flowweblog adapts flowweb's minimal diagnostic Logger hook to
// github.com/joeycumines/logiface, using github.com/joeycumines/stumpy as
// the structured-event backend — the same adapter shape this codebase uses
// for its other logiface backends (logiface-zerolog, logiface-logrus,
// logiface-slog), scaled down to flowweb's two-level diagnostic surface.
package flowweblog

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/flowweb/flowweb"
)

// Logger adapts a *logiface.Logger[*stumpy.Event] to flowweb.Logger.
type Logger struct {
	L *logiface.Logger[*stumpy.Event]
}

// New wraps a stumpy-backed logiface logger. Pass stumpy.L.New(...) options
// as usual; see github.com/joeycumines/stumpy's docs.
func New(l *logiface.Logger[*stumpy.Event]) *Logger {
	return &Logger{L: l}
}

// Log implements flowweb.Logger.
func (a *Logger) Log(level flowweb.LogLevel, msg string, fields map[string]any) {
	if a == nil || a.L == nil {
		return
	}

	var b *logiface.Builder[*stumpy.Event]
	switch level {
	case flowweb.LevelWarn:
		b = a.L.Warning()
	default:
		b = a.L.Debug()
	}
	if b == nil {
		return
	}
	for k, v := range fields {
		b = b.Interface(k, v)
	}
	b.Log(msg)
}
