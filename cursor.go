package flowweb

// InstructionCounter is the abstract per-thread work-measurement capability
// described in SPEC_FULL.md §4.3. Implementations live in
// github.com/flowweb/flowweb/instrcounter; FlowWeb depends only on this
// interface, never on a concrete backend.
type InstructionCounter interface {
	// Open binds a handle to tid. It fails if tid is gone.
	Open(tid uint32) (InstructionCounterHandle, error)
}

// InstructionCounterHandle yields a monotonically-non-decreasing
// instruction count for the thread it is bound to, and releases any
// underlying OS resource on Close.
type InstructionCounterHandle interface {
	Read() (uint64, error)
	Close() error
}

// ThreadCursor is per-thread bookkeeping: which node the thread is
// currently "sitting on", and its last sampled instruction count.
type ThreadCursor struct {
	// Position is the node that most recently woke this thread (for
	// waiters), or the node this thread just created (for wakers). The
	// zero handle means "no position": the thread has never woken anyone
	// and has never been woken, or the retention sweep pruned the node it
	// pointed at.
	Position nodeHandle

	hasReading     bool
	counterReading uint64
	handle         InstructionCounterHandle
}

// closeHandle releases the cursor's counter handle, if any. Called when the
// cursor is evicted (only happens on FlowWeb.Clear, per SPEC_FULL.md §3's
// lifecycle note: cursors are destroyed on clear(), never by retention,
// since retention only prunes forest nodes).
func (c *ThreadCursor) closeHandle() {
	if c.handle != nil {
		_ = c.handle.Close()
		c.handle = nil
	}
}
