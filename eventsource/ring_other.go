//go:build !linux

package eventsource

import "errors"

// ErrReadinessUnsupported is returned by NewReadiness on platforms without
// an eventfd-equivalent wired up. Ring.Drain()/Poll() still work without it
// — a host just has to dedicate a goroutine to calling them instead of
// multiplexing via a readiness fd.
var ErrReadinessUnsupported = errors.New("eventsource: readiness descriptor not supported on this platform")

// Readiness is the non-Linux stub; see ring_linux.go for the real thing.
type Readiness struct{}

func NewReadiness() (*Readiness, error) {
	return nil, ErrReadinessUnsupported
}

func (r *Readiness) FD() int        { return -1 }
func (r *Readiness) Notify() error  { return ErrReadinessUnsupported }
func (r *Readiness) Consume() error { return ErrReadinessUnsupported }
func (r *Readiness) Close() error   { return nil }
