// Package threadenum lists the live thread ids of a target process. It is
// an external collaborator per spec.md §1 ("out of scope"): the core never
// imports this package, only cmd/flowweb does, to log how many threads the
// target has at startup. Instruction counters are opened lazily by the
// engine, per thread, when the thread is first observed.
package threadenum

// List returns the live thread ids of pid. Platform-specific
// implementations live in list_linux.go / list_other.go.
func List(pid int) ([]uint32, error) {
	return list(pid)
}
