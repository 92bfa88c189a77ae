package eventsource

import (
	"time"

	"github.com/flowweb/flowweb"
)

// EventSource is the capability described in spec.md §4.4. The core never
// blocks in ProcessEvent; a host chooses between blocking Poll and
// non-blocking Drain to decide when to call it.
type EventSource interface {
	// Poll blocks for up to timeout (or indefinitely if timeout is nil)
	// waiting for one event. It returns ok=false if the timeout elapses
	// with nothing available.
	Poll(timeout *time.Duration) (event flowweb.FutexEvent, ok bool, err error)

	// Drain returns every event currently available without blocking.
	Drain() ([]flowweb.FutexEvent, error)
}
