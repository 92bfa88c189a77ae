package flowweb

// nodeHandle addresses a slot in a FlowWeb's arena. The zero value (a zero
// generation) never matches a live slot, so it doubles as "no node" (used
// for an absent parent, i.e. a root, and for "no position yet").
//
// Handles are generational: when a slot is freed and later reused, its
// generation is bumped, so any handle captured before the free compares
// unequal to the slot's current generation and is correctly treated as
// referring to a node that no longer exists (invariants 2/3 in SPEC_FULL.md
// §3, and the arena design note in §9).
type nodeHandle struct {
	index      uint32
	generation uint32
}

func (h nodeHandle) valid() bool {
	return h.generation != 0
}

// FlowWebNode is one node in the causal forest: the inferred wake site
// created by a single FUTEX_WAKE/FUTEX_WAKE_BITSET event.
type FlowWebNode struct {
	// Owner is the tid that performed the WAKE creating this node.
	Owner uint32
	// TimestampNs is the wake event's timestamp.
	TimestampNs uint64
	// MaxWakeCount is the remaining unclaimed wake credit, initialized from
	// the creating WAKE's Ret and decremented by each claiming WAIT.
	MaxWakeCount int64
	// Len is the work weight credited to this node (an instruction-count
	// delta on Owner, or zero if no counter backend / no prior reading).
	Len int64
	// LastUpdateTimestamp is the ns timestamp of the last event that
	// touched this node; drives the retention sweep.
	LastUpdateTimestamp uint64

	children []nodeHandle
	parent   nodeHandle
}

// childHandles returns this node's child nodes in causal-discovery order. The
// returned slice must not be retained past the next mutating call on the
// owning FlowWeb.
func (n *FlowWebNode) childHandles() []nodeHandle {
	return n.children
}

// arena owns the backing storage for a forest's nodes. Edges and indices
// reference nodes via nodeHandle, never via pointer, so a pruned node can
// never be dereferenced through a stale reference (see doc.go and
// SPEC_FULL.md §3's "Representation decision").
type arena struct {
	slots    []arenaSlot
	freeList []uint32
}

type arenaSlot struct {
	node       FlowWebNode
	generation uint32
	alive      bool
}

func (a *arena) reset() {
	a.slots = a.slots[:0]
	a.freeList = a.freeList[:0]
}

// alloc stores n in a free (or new) slot and returns a handle to it.
func (a *arena) alloc(n FlowWebNode) nodeHandle {
	if len(a.freeList) > 0 {
		idx := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		slot := &a.slots[idx]
		slot.node = n
		slot.alive = true
		return nodeHandle{index: idx, generation: slot.generation}
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, arenaSlot{node: n, generation: 1, alive: true})
	return nodeHandle{index: idx, generation: 1}
}

// get resolves a handle to its node, returning ok=false for an invalid,
// out-of-range, or stale (freed/reused) handle.
func (a *arena) get(h nodeHandle) (*FlowWebNode, bool) {
	if !h.valid() || int(h.index) >= len(a.slots) {
		return nil, false
	}
	slot := &a.slots[h.index]
	if !slot.alive || slot.generation != h.generation {
		return nil, false
	}
	return &slot.node, true
}

// free releases h's slot, bumping its generation so existing handles to it
// become stale, and returns it to the free list for reuse.
func (a *arena) free(h nodeHandle) {
	if !h.valid() || int(h.index) >= len(a.slots) {
		return
	}
	slot := &a.slots[h.index]
	if !slot.alive {
		return
	}
	slot.alive = false
	slot.node = FlowWebNode{}
	slot.generation++
	a.freeList = append(a.freeList, h.index)
}
