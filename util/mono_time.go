//go:build linux

package util

import (
	"golang.org/x/sys/unix"

	"github.com/rasta-transport/evsys/internal"
)

// GetMonoNanos returns the CLOCK_MONOTONIC reading in nanoseconds. The epoch
// is arbitrary but fixed; the value never goes backwards, even if the wall
// clock is adjusted.
func GetMonoNanos() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic(err)
	}
	return internal.TimespecToNanos(ts)
}
