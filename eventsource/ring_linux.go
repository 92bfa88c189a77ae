//go:build linux

package eventsource

import (
	"golang.org/x/sys/unix"
)

// Readiness pairs a Ring with an eventfd(2) descriptor so a host can
// register it in the same epoll set it uses for other I/O, per spec.md §6
// ("Ring channel ... a readiness file descriptor"). It wraps the one fd a
// Ring needs; registering it with epoll is left to the host.
type Readiness struct {
	fd int
}

// NewReadiness creates a non-blocking eventfd. Call Notify after every
// successful Push so a host blocked in epoll_wait on FD wakes up; call
// Consume after draining to reset readiness.
func NewReadiness() (*Readiness, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &Readiness{fd: fd}, nil
}

// FD returns the underlying file descriptor for epoll registration.
func (r *Readiness) FD() int {
	return r.fd
}

// Notify increments the eventfd counter by one, waking any epoll_wait
// registered on FD.
func (r *Readiness) Notify() error {
	var buf [8]byte
	buf[0] = 1
	_, err := unix.Write(r.fd, buf[:])
	return err
}

// Consume drains the eventfd counter: one read returns the accumulated
// count and resets it to zero, so a host typically calls Consume once per
// Ring.Drain() batch rather than once per event.
func (r *Readiness) Consume() error {
	var buf [8]byte
	_, err := unix.Read(r.fd, buf[:])
	if err == unix.EAGAIN {
		return nil
	}
	return err
}

// Close releases the eventfd.
func (r *Readiness) Close() error {
	return unix.Close(r.fd)
}
