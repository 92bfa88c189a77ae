// Package flowweb reconstructs a causal graph of futex wait/wake activity
// observed on a running process and identifies the critical path through it.
//
// # Architecture
//
// A [FlowWeb] consumes a stream of [FutexEvent] values, one at a time, via
// [FlowWeb.ProcessEvent]. It incrementally maintains a forest of
// [FlowWebNode] values, each representing one observed FUTEX_WAKE, with
// parent-child edges encoding inferred wake-to-wait causality. Nodes live in
// an internal arena addressed by generational handles rather than pointers,
// so that the by-address and by-thread indices (the join index a WAIT is
// matched through, and each [ThreadCursor]'s position) can never outlive the node
// they reference (see the design notes in SPEC_FULL.md).
//
// [FlowWeb.Analyze] runs the critical-path search over the forest on demand,
// selecting the root-to-leaf path that maximizes either cumulative
// instruction count or cumulative wall-clock time, depending on the
// configured [WeightMode].
//
// # Thread Safety
//
// FlowWeb is NOT safe for concurrent use. All mutation happens on whichever
// goroutine calls ProcessEvent; Analyze may be called from that same
// goroutine between events, never concurrently with it. Concurrency between
// an event producer and the engine is the caller's responsibility — see
// [github.com/flowweb/flowweb/eventsource] for an SPSC ring channel meant to
// bridge exactly that gap.
//
// # Out of scope
//
// The kernel-side probe that emits FutexEvent records, the per-thread
// instruction counter reader, and process/thread enumeration are external
// collaborators with their own packages ([github.com/flowweb/flowweb/eventsource],
// [github.com/flowweb/flowweb/instrcounter], [github.com/flowweb/flowweb/threadenum]).
// This package only consumes their abstract capabilities.
package flowweb
