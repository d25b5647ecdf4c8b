//go:build linux

package util

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PinThread locks the calling goroutine to its OS thread and restricts that
// thread to cpus, so an event loop run by the goroutine is not migrated.
// The returned release unlocks the thread; the affinity stays.
func PinThread(cpus ...int) (release func(), err error) {
	if len(cpus) == 0 {
		return nil, fmt.Errorf("no CPUs to pin to")
	}

	runtime.LockOSThread()
	defer func() {
		if err != nil {
			runtime.UnlockOSThread()
		}
	}()

	set := &unix.CPUSet{}
	for _, cpu := range cpus {
		set.Set(cpu)
	}
	if err := unix.SchedSetaffinity(0, set); err != nil {
		return nil, fmt.Errorf("could not pin to CPUs %v: %w", cpus, err)
	}

	verify := &unix.CPUSet{}
	if err := unix.SchedGetaffinity(0, verify); err != nil {
		return nil, fmt.Errorf("could not read affinity: %w", err)
	}
	if verify.Count() != len(cpus) {
		return nil, fmt.Errorf("could not pin to CPUs %v", cpus)
	}
	for _, cpu := range cpus {
		if !verify.IsSet(cpu) {
			return nil, fmt.Errorf("could not pin to CPUs %v", cpus)
		}
	}

	return runtime.UnlockOSThread, nil
}
