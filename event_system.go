package evsys

import (
	"math"
	"time"

	"github.com/rasta-transport/evsys/everrors"
	"github.com/rasta-transport/evsys/internal"
	"github.com/rasta-transport/evsys/util"
)

// EventSystem holds the registries of timed and fd events an event loop
// serves. It owns neither the descriptors nor the events; collaborators
// register handles to what they own.
//
// An EventSystem is not safe for concurrent use. Register and remove events
// before starting the loop or from callbacks running on the loop.
type EventSystem struct {
	timed *util.List[*TimedEvent]
	fds   *util.List[*FdEvent]

	clock            Clock
	logger           *Logger
	stats            *Stats
	report           *util.LatencyReport
	selector         internal.Selector
	interruptIsFatal bool

	// running is the reactor currently executing Run, if any.
	running *Reactor
}

func NewEventSystem(opts ...Option) *EventSystem {
	s := &EventSystem{
		timed:    util.NewList[*TimedEvent](),
		fds:      util.NewList[*FdEvent](),
		clock:    MonotonicClock{},
		selector: internal.SysSelector{},
	}

	for _, opt := range opts {
		switch opt.Type() {
		case TypeLogger:
			s.logger = opt.Value().(*Logger)
		case TypeClock:
			if c, ok := opt.Value().(Clock); ok && c != nil {
				s.clock = c
			}
		case TypeStats:
			s.stats = opt.Value().(*Stats)
		case TypeInterruptIsFatal:
			s.interruptIsFatal = opt.Value().(bool)
		case TypeLatencyReport:
			v := opt.Value().(latencyReportValue)
			s.report = util.NewLatencyReport(util.LatencyReportOpts{
				Name:      "timed_event_lateness",
				Unit:      "us",
				Samples:   v.samples,
				MinPct:    0.1,
				Min:       1,
				Max:       maxLatenessMicros,
				Precision: 2,
				Writer:    v.w,
			})
		}
	}

	return s
}

// AddTimedEvent appends ev to the timed registry. Timed events fire in
// registration order when due at the same time.
func (s *EventSystem) AddTimedEvent(ev *TimedEvent) error {
	if ev.sys != nil {
		return everrors.ErrAlreadyRegistered
	}
	if ev.cb == nil {
		return everrors.ErrNilCallback
	}
	ev.handle = s.timed.Add(ev)
	ev.sys = s
	return nil
}

// RemoveTimedEvent detaches ev, which can then be added again, to this or
// another EventSystem.
func (s *EventSystem) RemoveTimedEvent(ev *TimedEvent) error {
	if ev.sys != s || !s.timed.Remove(ev.handle) {
		return everrors.ErrNotRegistered
	}
	ev.sys = nil
	ev.handle = util.Handle{}
	return nil
}

// AddFdEvent appends ev to the fd registry, watching the given conditions.
func (s *EventSystem) AddFdEvent(ev *FdEvent, interest Interest) error {
	if ev.sys != nil {
		return everrors.ErrAlreadyRegistered
	}
	if ev.cb == nil {
		return everrors.ErrNilCallback
	}
	ev.interest = interest
	ev.handle = s.fds.Add(ev)
	ev.sys = s
	return nil
}

func (s *EventSystem) RemoveFdEvent(ev *FdEvent) error {
	if ev.sys != s || !s.fds.Remove(ev.handle) {
		return everrors.ErrNotRegistered
	}
	ev.sys = nil
	ev.handle = util.Handle{}
	return nil
}

func (s *EventSystem) TimedEvents() int {
	return s.timed.Len()
}

func (s *EventSystem) FdEvents() int {
	return s.fds.Len()
}

// Now reads the system's clock.
func (s *EventSystem) Now() uint64 {
	return s.clock.Now()
}

// NextDeadline reports how long until the next enabled timed event is due.
// It returns false if no timed event is enabled.
func (s *EventSystem) NextDeadline() (time.Duration, bool) {
	wait, candidate := computeNext(s.timed, s.clock.Now())
	if candidate == nil {
		return 0, false
	}
	if wait > math.MaxInt64 {
		wait = math.MaxInt64
	}
	return time.Duration(wait), true
}

func (s *EventSystem) Stats() *Stats {
	return s.stats
}

// Start runs a new event loop over the registered events until a callback
// returns ErrStop or the loop fails. See Reactor.Run.
func (s *EventSystem) Start() error {
	return s.NewReactor().Run()
}
