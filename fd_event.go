package evsys

import (
	"github.com/rasta-transport/evsys/util"
)

// FdEvent is a callback invoked when a descriptor satisfies one of the
// conditions it watches.
//
// The descriptor is owned by the caller; the event system never closes it.
// The same ownership rules as for TimedEvent apply.
type FdEvent struct {
	fd       int
	interest Interest
	enabled  bool
	cb       Callback

	sys    *EventSystem
	handle util.Handle
}

// NewFdEvent returns an enabled event on fd. The watched conditions are given
// when the event is added to an EventSystem.
func NewFdEvent(fd int, cb Callback) *FdEvent {
	return &FdEvent{
		fd:      fd,
		enabled: true,
		cb:      cb,
	}
}

func (ev *FdEvent) Fd() int {
	return ev.fd
}

func (ev *FdEvent) Interest() Interest {
	return ev.interest
}

// SetInterest replaces the watched conditions. It takes effect on the next
// wait.
func (ev *FdEvent) SetInterest(interest Interest) {
	ev.interest = interest
}

func (ev *FdEvent) Enabled() bool {
	return ev.enabled
}

func (ev *FdEvent) Registered() bool {
	return ev.sys != nil
}

func (ev *FdEvent) Enable() {
	ev.enabled = true
}

func (ev *FdEvent) Disable() {
	ev.enabled = false
}
