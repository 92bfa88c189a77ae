package flowweb

// Metrics is a read-only snapshot of diagnostic counters. It has no effect
// on engine semantics (SPEC_FULL.md §4 "Metrics") and is provided purely
// for observability — analogous in spirit to the teacher eventloop's
// runtime metrics, trimmed to the counters that make sense for a forest
// engine (no latency histograms: the engine itself has no scheduling
// latency to measure).
type Metrics struct {
	// NodesCreated counts every WAKE that produced a node, including ones
	// with MaxWakeCount <= 0.
	NodesCreated uint64
	// NodesPruned counts nodes removed by the retention sweep.
	NodesPruned uint64
	// WaitsDroppedNoAddress counts WAITs whose address had no by_addr entry.
	WaitsDroppedNoAddress uint64
	// WaitsDroppedExhausted counts WAITs that found a node with
	// MaxWakeCount <= 0.
	WaitsDroppedExhausted uint64
	// WaitsClaimed counts WAITs that successfully decremented a node's
	// MaxWakeCount.
	WaitsClaimed uint64
	// EventsIgnored counts events whose canonical command was CmdIgnored.
	EventsIgnored uint64
}

// LiveNodeCount and RootCount are computed on demand from the live engine
// state rather than tracked as running counters, since they can change on
// every event and a stale cached value would be more confusing than useful.

// LiveNodeCount returns the number of nodes currently in the forest.
func (w *FlowWeb) LiveNodeCount() int {
	n := 0
	for i := range w.arena.slots {
		if w.arena.slots[i].alive {
			n++
		}
	}
	return n
}

// RootCount returns the number of root nodes currently in the forest.
func (w *FlowWeb) RootCount() int {
	return len(w.roots)
}
