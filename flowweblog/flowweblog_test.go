package flowweblog

import (
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowweb/flowweb"
)

func TestLoggerLogsLevelAndFields(t *testing.T) {
	var lines []string
	writer := logiface.WriterFunc[*stumpy.Event](func(e *stumpy.Event) error {
		lines = append(lines, string(e.Bytes()))
		return nil
	})

	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithTimeField("")),
		stumpy.L.WithWriter(writer),
	)

	a := New(l)
	a.Log(flowweb.LevelWarn, "dangling entry pruned", map[string]any{"uaddr": uint64(0x1000)})
	a.Log(flowweb.LevelDebug, "routine drop", nil)

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"dangling entry pruned"`)
	assert.Contains(t, lines[1], `"msg":"routine drop"`)
}

func TestLoggerNilSafety(t *testing.T) {
	var a *Logger
	assert.NotPanics(t, func() {
		a.Log(flowweb.LevelWarn, "unreachable", nil)
	})

	a = New(nil)
	assert.NotPanics(t, func() {
		a.Log(flowweb.LevelWarn, "unreachable", nil)
	})
}
