package evsys

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/rasta-transport/evsys/internal"
)

type fakeClock struct {
	now uint64
}

func (c *fakeClock) Now() uint64 {
	return c.now
}

// fakeSelector stands in for select(2). Unless ready reports activity, every
// call times out after advancing the fake clock by the requested timeout
// plus overshoot.
type fakeSelector struct {
	t     *testing.T
	clock *fakeClock

	calls     int
	nfds      []int
	timeouts  []uint64
	watched   []internal.FdSets
	overshoot uint64

	// ready, if set, may mark descriptors from in as ready in out and return
	// how many it marked. It may also advance the clock.
	ready func(call int, in *internal.FdSets, out *internal.FdSets) int

	// errs are returned, in order, by the first calls.
	errs []error
}

var _ internal.Selector = (*fakeSelector)(nil)

func (f *fakeSelector) Select(nfds int, sets *internal.FdSets, timeout *unix.Timeval) (int, error) {
	f.calls++
	f.nfds = append(f.nfds, nfds)
	f.timeouts = append(f.timeouts, internal.TimevalToNanos(timeout))
	f.watched = append(f.watched, *sets)

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return -1, err
		}
	}

	in := *sets
	sets.Zero()
	if f.ready != nil {
		if n := f.ready(f.calls, &in, sets); n > 0 {
			return n, nil
		}
	}

	if timeout == nil {
		f.t.Fatal("select would block forever")
	}
	f.clock.now += internal.TimevalToNanos(timeout) + f.overshoot
	return 0, nil
}

const testEpoch = 1_000_000_000

func newTestSystem(t *testing.T, opts ...Option) (*EventSystem, *fakeClock, *fakeSelector) {
	clock := &fakeClock{now: testEpoch}
	sel := &fakeSelector{t: t, clock: clock}

	sys := NewEventSystem(append([]Option{WithClock(clock)}, opts...)...)
	sys.selector = sel
	return sys, clock, sel
}
