package eventsource

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/flowweb/flowweb"
)

// ErrCapacityNotPowerOfTwo is returned by NewRing for a non-power-of-two
// capacity (required for the bitwise index wrapping below).
var ErrCapacityNotPowerOfTwo = errors.New("eventsource: capacity must be a power of two")

// Ring is a single-producer/single-consumer, fixed-capacity ring channel of
// decoded flowweb.FutexEvent values. It is not byte-oriented: slots hold Go
// structs, not wire-encoded records, and converting to or from the wire
// layout (see Encode/Decode) is left to the caller. Unlike the teacher eventloop's MicrotaskRing
// (MPSC, unbounded via a mutex-protected overflow slice), this ring is SPSC
// and deliberately has no overflow: per spec.md §5 ("Backpressure"), a full
// ring means the probe drops the record, counted in Dropped rather than
// spilled into unbounded host memory.
//
// Concurrency model: exactly one goroutine may call Push, and exactly one
// (possibly different) goroutine may call Pop/Drain, concurrently with each
// other. Push/Pop use the classic release/acquire per-slot sequence
// discipline: Push writes the event then release-stores the slot's
// sequence; Pop acquire-loads the sequence before reading the event.
type Ring struct {
	capacity uint64
	mask     uint64
	slots    []ringSlot

	head atomic.Uint64 // consumer cursor
	tail atomic.Uint64 // producer cursor

	dropped atomic.Uint64
}

type ringSlot struct {
	seq   atomic.Uint64
	event flowweb.FutexEvent
}

// NewRing constructs a Ring with the given capacity, which must be a power
// of two.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, ErrCapacityNotPowerOfTwo
	}
	r := &Ring{
		capacity: uint64(capacity),
		mask:     uint64(capacity - 1),
		slots:    make([]ringSlot, capacity),
	}
	return r, nil
}

// Push enqueues e. It returns false (and increments Dropped) if the ring is
// full; it never blocks.
func (r *Ring) Push(e flowweb.FutexEvent) bool {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail-head >= r.capacity {
		r.dropped.Add(1)
		return false
	}
	idx := tail & r.mask
	r.slots[idx].event = e
	r.slots[idx].seq.Store(tail + 1) // release: publishes the write above
	r.tail.Store(tail + 1)
	return true
}

// pop removes and returns one event, reporting ok=false if empty.
func (r *Ring) pop() (flowweb.FutexEvent, bool) {
	head := r.head.Load()
	idx := head & r.mask
	if r.slots[idx].seq.Load() != head+1 { // acquire
		return flowweb.FutexEvent{}, false
	}
	e := r.slots[idx].event
	r.head.Store(head + 1)
	return e, true
}

// Dropped returns the number of records dropped because the ring was full.
func (r *Ring) Dropped() uint64 {
	return r.dropped.Load()
}

// Len returns the approximate number of queued events (racy under
// concurrent Push, like the teacher ring's IsEmpty/Length).
func (r *Ring) Len() int {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail <= head {
		return 0
	}
	return int(tail - head)
}

// Drain implements EventSource.Drain: every event currently available,
// without blocking.
func (r *Ring) Drain() ([]flowweb.FutexEvent, error) {
	var out []flowweb.FutexEvent
	for {
		e, ok := r.pop()
		if !ok {
			break
		}
		out = append(out, e)
	}
	return out, nil
}

// Poll implements EventSource.Poll by spin-waiting with a short sleep
// between attempts until timeout elapses. Hosts that need true blocking
// (parked, not spinning) should pair a Ring with a readiness descriptor —
// see ring_linux.go — and register it with their own polling loop instead
// of calling Poll.
func (r *Ring) Poll(timeout *time.Duration) (flowweb.FutexEvent, bool, error) {
	if e, ok := r.pop(); ok {
		return e, true, nil
	}
	if timeout == nil {
		for {
			if e, ok := r.pop(); ok {
				return e, true, nil
			}
			time.Sleep(time.Microsecond)
		}
	}
	deadline := time.Now().Add(*timeout)
	for time.Now().Before(deadline) {
		if e, ok := r.pop(); ok {
			return e, true, nil
		}
		time.Sleep(time.Microsecond)
	}
	return flowweb.FutexEvent{}, false, nil
}
