//go:build linux

package instrcounter

import (
	"encoding/binary"
	"errors"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/flowweb/flowweb"
)

var errShortPerfRead = errors.New("instrcounter: short read from perf event fd")

// PerfCounter opens one PERF_COUNT_HW_INSTRUCTIONS hardware counter per
// thread via perf_event_open(2), through golang.org/x/sys/unix's syscall
// wrappers — the same style this codebase uses elsewhere for direct,
// typed access to Linux kernel facilities (see the eventfd wrapper in
// eventsource/ring_linux.go).
//
// PerfCounter implements flowweb.InstructionCounter: Open binds one counter
// to a tid, scoped exactly as spec.md §4.3 describes. The delta math lives
// in flowweb.FlowWeb, not here — Read just returns the raw monotonic
// counter value.
type PerfCounter struct{}

// Open opens a per-thread retired-instructions counter for tid. It fails if
// the thread is gone (ESRCH from perf_event_open).
func (PerfCounter) Open(tid uint32) (flowweb.InstructionCounterHandle, error) {
	var attr unix.PerfEventAttr
	attr.Type = unix.PERF_TYPE_HARDWARE
	attr.Config = unix.PERF_COUNT_HW_INSTRUCTIONS
	attr.Size = uint32(unsafe.Sizeof(attr))
	attr.Bits = unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv

	fd, err := unix.PerfEventOpen(&attr, int(tid), -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	return &perfHandle{fd: fd}, nil
}

type perfHandle struct {
	fd int
}

// Read returns the raw, monotonically-increasing retired-instruction count.
func (h *perfHandle) Read() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(h.fd, buf[:])
	if err != nil {
		return 0, err
	}
	if n != len(buf) {
		return 0, errShortPerfRead
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}

// Close disables and releases the counter.
func (h *perfHandle) Close() error {
	_ = unix.IoctlSetInt(h.fd, unix.PERF_EVENT_IOC_DISABLE, 0)
	return unix.Close(h.fd)
}
