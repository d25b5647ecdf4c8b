package evsys

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimedEventDefaults(t *testing.T) {
	ev := NewTimedEvent(250*time.Millisecond, nop)
	assert.True(t, ev.Enabled())
	assert.False(t, ev.Registered())
	assert.Equal(t, 250*time.Millisecond, ev.Interval())
	assert.Equal(t, uint64(0), ev.LastCall())

	neg := NewTimedEvent(-time.Second, nop)
	assert.Equal(t, time.Duration(0), neg.Interval())
}

func TestTimedEventDueAtSaturates(t *testing.T) {
	ev := NewTimedEvent(10*time.Millisecond, nop)
	ev.lastCall = 5
	assert.Equal(t, 5+10*ms, ev.DueAt())

	ev.lastCall = NoDeadline - 1
	assert.Equal(t, NoDeadline, ev.DueAt())
}

func TestTimedEventRescheduleUsesSystemClock(t *testing.T) {
	sys, clock, _ := newTestSystem(t)

	ev := NewTimedEvent(time.Second, nop)
	require.NoError(t, sys.AddTimedEvent(ev))

	clock.now += 7
	ev.Reschedule()
	assert.Equal(t, uint64(testEpoch+7), ev.LastCall())

	ev.Disable()
	assert.False(t, ev.Enabled())
	assert.True(t, ev.Registered())

	clock.now += 3
	ev.Enable()
	assert.True(t, ev.Enabled())
	assert.Equal(t, uint64(testEpoch+10), ev.LastCall())
}

func TestTimedEventRescheduleUnregistered(t *testing.T) {
	ev := NewTimedEvent(time.Second, nop)
	before := MonotonicClock{}.Now()
	ev.Reschedule()
	assert.GreaterOrEqual(t, ev.LastCall(), before)
	assert.LessOrEqual(t, ev.LastCall(), MonotonicClock{}.Now())
}

func TestFdEvent(t *testing.T) {
	ev := NewFdEvent(17, nop)
	assert.Equal(t, 17, ev.Fd())
	assert.True(t, ev.Enabled())
	assert.False(t, ev.Registered())
	assert.Equal(t, Interest(0), ev.Interest())

	ev.SetInterest(Writable)
	assert.Equal(t, Writable, ev.Interest())

	ev.Disable()
	assert.False(t, ev.Enabled())
	ev.Enable()
	assert.True(t, ev.Enabled())
}

func TestFdEventSetInterestTakesEffectOnNextWait(t *testing.T) {
	sys, _, sel := newTestSystem(t)

	ev := NewFdEvent(5, nop)
	require.NoError(t, sys.AddFdEvent(ev, Readable))

	n := 0
	require.NoError(t, sys.AddTimedEvent(NewTimedEvent(time.Millisecond, func() error {
		n++
		if n == 2 {
			return ErrStop
		}
		ev.SetInterest(Writable | Exceptional)
		return nil
	})))

	require.NoError(t, sys.Start())
	require.Len(t, sel.watched, 2)

	assert.True(t, sel.watched[0].Read.IsSet(5))
	assert.False(t, sel.watched[0].Write.IsSet(5))

	assert.False(t, sel.watched[1].Read.IsSet(5))
	assert.True(t, sel.watched[1].Write.IsSet(5))
	assert.True(t, sel.watched[1].Except.IsSet(5))
}

func TestInterest(t *testing.T) {
	for _, tc := range []struct {
		in   Interest
		want string
	}{
		{0, "none"},
		{Readable, "readable"},
		{Writable, "writable"},
		{Exceptional, "exceptional"},
		{Readable | Writable, "readable|writable"},
		{Readable | Writable | Exceptional, "readable|writable|exceptional"},
	} {
		assert.Equal(t, tc.want, tc.in.String())
	}

	rw := Readable | Writable
	assert.True(t, rw.Has(Readable))
	assert.True(t, rw.Has(Readable|Writable))
	assert.False(t, rw.Has(Exceptional))
	assert.False(t, rw.Has(Readable|Exceptional))
	assert.False(t, rw.Has(0))
}

func TestClockFunc(t *testing.T) {
	var c Clock = ClockFunc(func() uint64 { return 99 })
	assert.Equal(t, uint64(99), c.Now())
}
