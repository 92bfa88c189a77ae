//go:build linux

package threadenum

import (
	"fmt"
	"os"
	"strconv"
)

// list reads /proc/<pid>/task, the standard Linux mechanism for listing a
// process's threads.
func list(pid int) ([]uint32, error) {
	entries, err := os.ReadDir(fmt.Sprintf("/proc/%d/task", pid))
	if err != nil {
		return nil, err
	}
	tids := make([]uint32, 0, len(entries))
	for _, e := range entries {
		tid, err := strconv.ParseUint(e.Name(), 10, 32)
		if err != nil {
			continue
		}
		tids = append(tids, uint32(tid))
	}
	return tids, nil
}
