package evsys

import (
	"github.com/rasta-transport/evsys/util"
)

// Clock yields monotonic nanoseconds since an arbitrary, fixed epoch.
type Clock interface {
	Now() uint64
}

// MonotonicClock reads CLOCK_MONOTONIC.
type MonotonicClock struct{}

func (MonotonicClock) Now() uint64 {
	return util.GetMonoNanos()
}

// ClockFunc adapts a function to a Clock.
type ClockFunc func() uint64

func (f ClockFunc) Now() uint64 {
	return f()
}
