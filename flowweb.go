package flowweb

// FlowWeb is the single-threaded, online engine described in SPEC_FULL.md
// §4.1. It consumes FutexEvent values one at a time via ProcessEvent and
// incrementally maintains a forest of FlowWebNode values. It is not safe
// for concurrent use; see doc.go.
type FlowWeb struct {
	cfg *config

	arena arena
	roots []nodeHandle
	byAddr map[uint64]nodeHandle
	byTid  map[uint32]*ThreadCursor

	lastEventTimestampNs    uint64
	hasLastEventTimestampNs bool

	metrics Metrics
}

// New constructs an empty FlowWeb. It performs no I/O.
func New(opts ...Option) *FlowWeb {
	w := &FlowWeb{}
	w.cfg = resolveConfig(opts)
	w.init()
	return w
}

func (w *FlowWeb) init() {
	w.arena.reset()
	w.roots = nil
	w.byAddr = make(map[uint64]nodeHandle)
	w.byTid = make(map[uint32]*ThreadCursor)
	w.lastEventTimestampNs = 0
	w.hasLastEventTimestampNs = false
	w.metrics = Metrics{}
}

// Clear drops all nodes and cursors, releasing any counter handles.
// Post-state is equivalent to New with the same configuration.
func (w *FlowWeb) Clear() {
	for _, cursor := range w.byTid {
		cursor.closeHandle()
	}
	w.init()
}

// SetWindow updates the retention horizon. A zero value disables windowing.
func (w *FlowWeb) SetWindow(windowNs uint64) {
	w.cfg.windowNs = windowNs
	w.cfg.hasWindow = windowNs != 0
}

// SetWeightMode updates which weight Analyze optimizes.
func (w *FlowWeb) SetWeightMode(mode WeightMode) {
	w.cfg.weightMode = mode
}

// Metrics returns a snapshot of diagnostic counters. See metrics.go.
func (w *FlowWeb) Metrics() Metrics {
	return w.metrics
}

// LastEventTimestamp returns the most recent event's timestamp, and whether
// any event has been processed yet.
func (w *FlowWeb) LastEventTimestamp() (ns uint64, ok bool) {
	return w.lastEventTimestampNs, w.hasLastEventTimestampNs
}

// ProcessEvent ingests one event. It is a total function: it never fails,
// and an unrecognized command is a no-op (spec.md §7).
func (w *FlowWeb) ProcessEvent(e FutexEvent) {
	switch canonicalCommand(e.FutexOp) {
	case CmdWait, CmdWaitBitset:
		w.processWait(e)
	case CmdWake, CmdWakeBitset:
		w.processWake(e)
	default:
		w.metrics.EventsIgnored++
		return
	}

	w.lastEventTimestampNs = e.TimestampNs
	w.hasLastEventTimestampNs = true

	if w.cfg.hasWindow {
		w.retainFresh()
	}
}

// sampleCounter attempts to read a fresh instruction count for tid, lazily
// opening a handle on cursor if needed. ok is false whenever no value could
// be obtained (no backend configured, open failed, or read failed) — every
// such case degrades to a zero-delta contribution, per spec.md §4.3.
func (w *FlowWeb) sampleCounter(tid uint32, cursor *ThreadCursor) (value uint64, ok bool) {
	if w.cfg.counter == nil {
		return 0, false
	}
	if cursor.handle == nil {
		h, err := w.cfg.counter.Open(tid)
		if err != nil {
			w.cfg.logger.Log(LevelDebug, "instruction counter open failed", map[string]any{
				"tid": tid, "err": err.Error(),
			})
			return 0, false
		}
		cursor.handle = h
	}
	v, err := cursor.handle.Read()
	if err != nil {
		w.cfg.logger.Log(LevelDebug, "instruction counter read failed", map[string]any{
			"tid": tid, "err": err.Error(),
		})
		return 0, false
	}
	return v, true
}

func (w *FlowWeb) processWake(e FutexEvent) {
	cursor, existed := w.byTid[e.Tid]
	if !existed {
		cursor = &ThreadCursor{}
		w.byTid[e.Tid] = cursor
	}
	parent := cursor.Position

	var length int64
	if cursor.hasReading {
		if v, ok := w.sampleCounter(e.Tid, cursor); ok {
			if v >= cursor.counterReading {
				length = int64(v - cursor.counterReading)
			}
			cursor.counterReading = v
		}
	} else if v, ok := w.sampleCounter(e.Tid, cursor); ok {
		cursor.counterReading = v
		cursor.hasReading = true
	}

	handle := w.arena.alloc(FlowWebNode{
		Owner:               e.Tid,
		TimestampNs:         e.TimestampNs,
		MaxWakeCount:        e.Ret,
		Len:                 length,
		LastUpdateTimestamp: e.TimestampNs,
	})
	w.metrics.NodesCreated++

	attached := false
	if parent.valid() {
		if pnode, ok := w.arena.get(parent); ok {
			pnode.children = append(pnode.children, handle)
			if n, ok := w.arena.get(handle); ok {
				n.parent = parent
			}
			attached = true
		} else {
			w.cfg.logger.Log(LevelWarn, "thread position referenced a pruned node; rooting new wake", map[string]any{
				"tid": e.Tid,
			})
		}
	}
	if !attached {
		w.roots = append(w.roots, handle)
	}

	w.byAddr[e.Uaddr] = handle
	cursor.Position = handle
}

func (w *FlowWeb) processWait(e FutexEvent) {
	target, ok := w.byAddr[e.Uaddr]
	if !ok {
		w.metrics.WaitsDroppedNoAddress++
		return
	}

	node, ok := w.arena.get(target)
	if !ok {
		// Dangling index entry: per spec.md §7, prune it and continue.
		delete(w.byAddr, e.Uaddr)
		w.cfg.logger.Log(LevelWarn, "by_addr referenced a pruned node; dropping entry", map[string]any{
			"uaddr": e.Uaddr,
		})
		w.metrics.WaitsDroppedNoAddress++
		return
	}

	if node.MaxWakeCount <= 0 {
		w.metrics.WaitsDroppedExhausted++
		return
	}

	node.MaxWakeCount--
	node.LastUpdateTimestamp = e.TimestampNs

	cursor, existed := w.byTid[e.Tid]
	if !existed {
		cursor = &ThreadCursor{}
		w.byTid[e.Tid] = cursor
		if v, ok := w.sampleCounter(e.Tid, cursor); ok {
			cursor.counterReading = v
			cursor.hasReading = true
		}
	}
	cursor.Position = target
	w.metrics.WaitsClaimed++
}

// retainFresh implements the retention sweep from spec.md §4.1: subtrees
// whose root has gone stale (last_update_timestamp more than window_ns
// behind last_event_timestamp_ns) are elided, promoting their still-fresh
// descendants to take their place, without orphaning anything.
func (w *FlowWeb) retainFresh() {
	newRoots := make([]nodeHandle, 0, len(w.roots))
	for _, r := range w.roots {
		newRoots = append(newRoots, w.retainSubtree(r)...)
	}
	w.roots = newRoots

	for addr, h := range w.byAddr {
		if _, ok := w.arena.get(h); !ok {
			delete(w.byAddr, addr)
		}
	}
	for _, cursor := range w.byTid {
		if cursor.Position.valid() {
			if _, ok := w.arena.get(cursor.Position); !ok {
				cursor.Position = nodeHandle{}
			}
		}
	}
}

func (w *FlowWeb) retainSubtree(h nodeHandle) []nodeHandle {
	node, ok := w.arena.get(h)
	if !ok {
		return nil
	}
	if satSub(w.lastEventTimestampNs, node.LastUpdateTimestamp) <= w.cfg.windowNs {
		return []nodeHandle{h}
	}

	children := append([]nodeHandle(nil), node.children...)
	w.arena.free(h)
	w.metrics.NodesPruned++

	var kept []nodeHandle
	for _, c := range children {
		promoted := w.retainSubtree(c)
		for _, k := range promoted {
			if kn, ok := w.arena.get(k); ok {
				kn.parent = nodeHandle{}
			}
		}
		kept = append(kept, promoted...)
	}
	return kept
}
