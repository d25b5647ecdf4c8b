//go:build linux

package internal

import (
	"math"
	"unsafe"

	"golang.org/x/sys/unix"
)

// FdSetCapacity is the number of descriptors an FdSet can hold (FD_SETSIZE).
// select(2) cannot watch a descriptor whose value is FdSetCapacity or above.
const FdSetCapacity = int(unsafe.Sizeof(unix.FdSet{})) * 8

// NoDeadline is the wait duration meaning "block until a descriptor is ready".
const NoDeadline = uint64(math.MaxUint64)

// FdSets are the three interest sets handed to select(2).
type FdSets struct {
	Read   unix.FdSet
	Write  unix.FdSet
	Except unix.FdSet
}

func (s *FdSets) Zero() {
	s.Read.Zero()
	s.Write.Zero()
	s.Except.Zero()
}

// Selector blocks until a descriptor in sets is ready, timeout elapses, or
// the call fails. On return, sets only contain the ready descriptors. A nil
// timeout blocks indefinitely.
type Selector interface {
	Select(nfds int, sets *FdSets, timeout *unix.Timeval) (n int, err error)
}

// SysSelector is the select(2) backed Selector.
type SysSelector struct{}

var _ Selector = SysSelector{}

func (SysSelector) Select(nfds int, sets *FdSets, timeout *unix.Timeval) (int, error) {
	return unix.Select(nfds, &sets.Read, &sets.Write, &sets.Except, timeout)
}

// NanosToTimeval converts a wait duration to the timeval select(2) expects.
// Sub-microsecond remainders are rounded up, so the wait never ends before
// the duration elapsed. NoDeadline, and anything too large to be expressed,
// yields nil, which select(2) treats as "no timeout".
//
// This is not a calendar conversion; it is only meaningful for durations.
func NanosToTimeval(ns uint64) *unix.Timeval {
	if ns > math.MaxInt64-999 {
		return nil
	}
	us := (ns + 999) / 1000
	tv := unix.NsecToTimeval(int64(us) * 1000)
	return &tv
}

// TimevalToNanos is the inverse of NanosToTimeval for whole microseconds.
func TimevalToNanos(tv *unix.Timeval) uint64 {
	if tv == nil {
		return NoDeadline
	}
	return uint64(tv.Nano())
}

// TimespecToNanos flattens a clock reading to nanoseconds.
func TimespecToNanos(ts unix.Timespec) uint64 {
	return uint64(ts.Sec)*1_000_000_000 + uint64(ts.Nsec)
}
