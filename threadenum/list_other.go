//go:build !linux

package threadenum

import "errors"

var ErrUnsupported = errors.New("threadenum: thread enumeration not supported on this platform")

func list(pid int) ([]uint32, error) {
	return nil, ErrUnsupported
}
