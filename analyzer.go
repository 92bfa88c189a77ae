package flowweb

// AnalyzeData is one node's contribution to a critical path, in root-to-leaf
// order.
type AnalyzeData struct {
	Tid         uint32
	TimestampNs uint64
	Len         int64
}

// Analyze runs the CriticalPathAnalyzer over the current forest, returning
// the root-to-leaf path that maximizes the configured WeightMode. It is
// read-only (spec.md §4.2: "does not mutate the web"), idempotent, and
// returns ok=false if the forest has no leaves (an empty forest, by
// construction, has none).
//
// Ties are broken by first-encountered in depth-first, child-insertion-order
// traversal: a later path only replaces the current best on strict
// improvement.
func (w *FlowWeb) Analyze() (path []AnalyzeData, ok bool) {
	var best []AnalyzeData
	var bestWeight uint64
	found := false

	for _, r := range w.roots {
		w.analyzeDFS(r, 0, nil, 0, false, w.cfg.weightMode, &best, &bestWeight, &found)
	}

	if !found {
		return nil, false
	}
	return best, true
}

func (w *FlowWeb) analyzeDFS(
	h nodeHandle,
	weightSoFar uint64,
	path []AnalyzeData,
	prevTimestamp uint64,
	hasPrev bool,
	mode WeightMode,
	best *[]AnalyzeData,
	bestWeight *uint64,
	found *bool,
) {
	node, ok := w.arena.get(h)
	if !ok {
		return
	}

	var contrib uint64
	switch mode {
	case WeightInstructions:
		contrib = uint64(node.Len)
	default: // WeightTime
		if hasPrev {
			contrib = satSub(node.TimestampNs, prevTimestamp)
		}
	}
	weight := weightSoFar + contrib
	path = append(path, AnalyzeData{Tid: node.Owner, TimestampNs: node.TimestampNs, Len: node.Len})

	if len(node.children) == 0 {
		if !*found || weight > *bestWeight {
			*best = append([]AnalyzeData(nil), path...)
			*bestWeight = weight
			*found = true
		}
		return
	}

	for _, c := range node.children {
		w.analyzeDFS(c, weight, path, node.TimestampNs, true, mode, best, bestWeight, found)
	}
}
