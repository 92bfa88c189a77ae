//go:build !linux

package instrcounter

import (
	"errors"

	"github.com/flowweb/flowweb"
)

// ErrUnsupported is returned by PerfCounter.Open on platforms without
// perf_event_open. Per spec.md §4.3 this degrades every cursor to a
// zero-delta contribution, same as NullCounter.
var ErrUnsupported = errors.New("instrcounter: perf counters not supported on this platform")

// PerfCounter is the non-Linux stub; see perf_linux.go for the real thing.
type PerfCounter struct{}

func (PerfCounter) Open(tid uint32) (flowweb.InstructionCounterHandle, error) {
	return nil, ErrUnsupported
}
