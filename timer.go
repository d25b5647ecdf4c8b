package evsys

import (
	"time"

	"github.com/rasta-transport/evsys/everrors"
)

type timerState uint8

const (
	stateReady timerState = iota
	stateScheduled
	stateClosed
)

// Timer runs a callback once, or repeatedly, on an EventSystem. It owns a
// TimedEvent that stays registered, disabled while idle, until Close.
//
// Scheduling from the timer's own callback measures the delay from the time
// the timer was due.
type Timer struct {
	sys   *EventSystem
	ev    *TimedEvent
	cb    Callback
	once  bool
	state timerState
}

func NewTimer(sys *EventSystem) (*Timer, error) {
	t := &Timer{sys: sys}
	t.ev = NewTimedEvent(0, t.fire)
	t.ev.Disable()
	if err := sys.AddTimedEvent(t.ev); err != nil {
		return nil, err
	}
	return t, nil
}

// ScheduleOnce runs cb after d, replacing any previous schedule.
func (t *Timer) ScheduleOnce(d time.Duration, cb Callback) error {
	return t.schedule(d, cb, true)
}

// ScheduleRepeating runs cb every d, replacing any previous schedule.
func (t *Timer) ScheduleRepeating(d time.Duration, cb Callback) error {
	return t.schedule(d, cb, false)
}

func (t *Timer) schedule(d time.Duration, cb Callback, once bool) error {
	if t.state == stateClosed {
		return everrors.ErrTimerClosed
	}
	if cb == nil {
		return everrors.ErrNilCallback
	}
	if d < 0 {
		d = 0
	}

	t.cb = cb
	t.once = once
	t.ev.interval = uint64(d)
	t.ev.Enable()
	t.state = stateScheduled
	return nil
}

func (t *Timer) Scheduled() bool {
	return t.state == stateScheduled
}

// Cancel stops a scheduled timer. It can be scheduled again afterwards.
func (t *Timer) Cancel() {
	if t.state != stateScheduled {
		return
	}
	t.ev.Disable()
	t.cb = nil
	t.state = stateReady
}

// Close cancels the timer and removes it from its EventSystem. It is safe to
// call from the timer's own callback.
func (t *Timer) Close() error {
	if t.state == stateClosed {
		return nil
	}
	t.Cancel()
	t.state = stateClosed
	return t.sys.RemoveTimedEvent(t.ev)
}

func (t *Timer) fire() error {
	cb := t.cb
	if t.once {
		t.Cancel()
	}
	return cb()
}
