// Package instrcounter provides InstructionCounter implementations for
// flowweb: a null stub, and (on Linux) a perf_event_open-backed hardware
// counter, per spec.md §4.3.
package instrcounter

import "github.com/flowweb/flowweb"

// NullCounter always returns a zero-delta reading, so every node's Len is
// zero — the behavior a host gets by simply not configuring a counter
// backend at all. Under WeightTime, Analyze is unaffected; under
// WeightInstructions every path weighs zero and Analyze returns the first
// root-to-leaf path in traversal order, not the time-weighted one.
// It exists as an explicit, nameable choice for hosts that want to be
// unambiguous about disabling instruction accounting.
type NullCounter struct{}

// Open always succeeds, returning a handle whose Read always returns 0.
func (NullCounter) Open(tid uint32) (flowweb.InstructionCounterHandle, error) {
	return nullHandle{}, nil
}

type nullHandle struct{}

func (nullHandle) Read() (uint64, error) { return 0, nil }
func (nullHandle) Close() error          { return nil }
