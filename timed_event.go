package evsys

import (
	"math"
	"time"

	"github.com/rasta-transport/evsys/util"
)

// TimedEvent is a periodic callback, due every interval since its last call.
//
// A TimedEvent is owned by its creator. It can be registered with at most one
// EventSystem at a time and must only be touched from the goroutine running
// that system's loop.
type TimedEvent struct {
	interval uint64
	lastCall uint64
	enabled  bool
	cb       Callback

	sys    *EventSystem
	handle util.Handle
}

// NewTimedEvent returns an enabled event firing every interval. Negative
// intervals are treated as zero.
func NewTimedEvent(interval time.Duration, cb Callback) *TimedEvent {
	if interval < 0 {
		interval = 0
	}
	return &TimedEvent{
		interval: uint64(interval),
		enabled:  true,
		cb:       cb,
	}
}

func (ev *TimedEvent) Interval() time.Duration {
	return time.Duration(ev.interval)
}

// LastCall is the clock reading at which the event was last considered fired.
func (ev *TimedEvent) LastCall() uint64 {
	return ev.lastCall
}

// DueAt is LastCall plus the interval, saturating at NoDeadline.
func (ev *TimedEvent) DueAt() uint64 {
	if ev.lastCall > math.MaxUint64-ev.interval {
		return math.MaxUint64
	}
	return ev.lastCall + ev.interval
}

func (ev *TimedEvent) Enabled() bool {
	return ev.enabled
}

func (ev *TimedEvent) Registered() bool {
	return ev.sys != nil
}

// Enable makes the event eligible for scheduling again. The next firing is
// a full interval from now.
func (ev *TimedEvent) Enable() {
	ev.enabled = true
	ev.Reschedule()
}

// Disable excludes the event from scheduling. It stays registered.
func (ev *TimedEvent) Disable() {
	ev.enabled = false
}

// Reschedule delays the next firing to a full interval from now, discarding
// any time already accumulated. A retransmission timer does this when an
// acknowledgement arrives.
func (ev *TimedEvent) Reschedule() {
	ev.lastCall = ev.clock().Now()
}

func (ev *TimedEvent) clock() Clock {
	if ev.sys != nil {
		return ev.sys.clock
	}
	return MonotonicClock{}
}
