package flowweb

import "fmt"

// LogLevel is the severity of a diagnostic emitted by FlowWeb. These never
// reflect an engine failure — process_event is infallible by contract
// (spec.md §7) — only conditions worth a human's attention: a dangling
// index entry pruned defensively, or (at Debug) an instruction counter
// that could not be opened or read. Routine drops, such as a wait with no
// matching address, are counted in Metrics and not logged.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelWarn
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Logger is the minimal diagnostic hook FlowWeb calls into. It is never on
// FlowWeb's critical path for correctness: a nil or no-op Logger changes no
// behavior. Hosts that want structured output adapt this to a real logging
// framework; see github.com/flowweb/flowweb/flowweblog for a logiface+stumpy
// adapter.
type Logger interface {
	Log(level LogLevel, msg string, fields map[string]any)
}

// noopLogger discards everything.
type noopLogger struct{}

func (noopLogger) Log(LogLevel, string, map[string]any) {}

// NewNoopLogger returns a Logger that discards all diagnostics. This is the
// default when no Logger is configured.
func NewNoopLogger() Logger { return noopLogger{} }
