package evsys

import (
	"github.com/rasta-transport/evsys/everrors"
)

type State uint8

const (
	// StateInitializing: created, the loop has not started yet.
	StateInitializing State = iota
	// StateRunning: the loop is dispatching events.
	StateRunning
	// StateTerminated: final. A new Reactor is needed to run again.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Reactor is one run of the event loop over an EventSystem's registries.
//
// Each iteration either fires exactly one due timed event, or waits for fd
// readiness until the next deadline and dispatches every ready fd event.
// Timed events fire in deadline order, ties going to the earlier
// registered event, so at most one timed callback runs per iteration.
type Reactor struct {
	sys   *EventSystem
	mux   multiplexer
	state State

	// active is set while Run or RunOne executes, so a callback cannot
	// re-enter the loop. The system is claimed only for that long.
	active bool

	err        error
	stopped    bool
	iterations uint64
}

// NewReactor returns a loop over s's registries. Only one reactor per
// EventSystem can execute at a time; between RunOne calls the system is free
// for another reactor.
func (s *EventSystem) NewReactor() *Reactor {
	return &Reactor{
		sys: s,
		mux: multiplexer{
			selector:         s.selector,
			interruptIsFatal: s.interruptIsFatal,
			logger:           s.logger,
		},
	}
}

func (r *Reactor) State() State {
	return r.state
}

// Stopped reports whether the loop terminated because a callback returned
// ErrStop.
func (r *Reactor) Stopped() bool {
	return r.stopped
}

// Err is the cause of termination, nil while running or after a graceful
// stop.
func (r *Reactor) Err() error {
	return r.err
}

func (r *Reactor) Iterations() uint64 {
	return r.iterations
}

// Run runs the loop until it terminates:
//   - nil: a callback returned ErrStop;
//   - *CallbackError: a callback returned another error;
//   - *WaitError wrapping everrors.ErrDescriptorLimit: a watched descriptor
//     does not fit select(2); no wait was attempted;
//   - *WaitError wrapping everrors.ErrWaitFailed: select(2) failed.
//
// Failures are never retried. Run on a terminated reactor returns
// everrors.ErrTerminated.
func (r *Reactor) Run() error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.exit()

	for r.state == StateRunning {
		r.step()
	}
	return r.err
}

// RunOne runs a single loop iteration. It returns done once the loop
// terminated, with the same error Run would have returned.
func (r *Reactor) RunOne() (done bool, err error) {
	if err := r.enter(); err != nil {
		return r.state == StateTerminated, err
	}
	defer r.exit()

	r.step()
	return r.state == StateTerminated, r.err
}

func (r *Reactor) enter() error {
	if r.state == StateTerminated {
		return everrors.ErrTerminated
	}
	if r.active {
		return everrors.ErrAlreadyRunning
	}
	if running := r.sys.running; running != nil && running != r {
		return everrors.ErrAlreadyRunning
	}

	r.active = true
	r.sys.running = r

	if r.state == StateInitializing {
		r.start()
	}
	return nil
}

func (r *Reactor) exit() {
	r.active = false
	if r.sys.running == r {
		r.sys.running = nil
	}
}

// start measures every enabled timed event's interval from now, rather than
// from when each was registered.
func (r *Reactor) start() {
	now := r.sys.clock.Now()
	for _, ev := range r.sys.timed.All() {
		if ev.enabled {
			ev.lastCall = now
		}
	}
	r.state = StateRunning

	r.sys.logger.Info().
		Int("timed_events", r.sys.timed.Len()).
		Int("fd_events", r.sys.fds.Len()).
		Log("event loop started")
}

func (r *Reactor) step() {
	r.iterations++
	sys := r.sys
	stats := sys.stats
	if stats != nil {
		stats.Iterations++
	}

	now := sys.clock.Now()
	wait, candidate := computeNext(sys.timed, now)

	switch {
	case candidate == nil:
		if sys.fds.Len() == 0 {
			sys.logger.Warning().Log("nothing registered, waiting indefinitely")
		}
		if _, err := r.wait(NoDeadline); err != nil {
			r.terminate(err)
		}

	case wait == 0:
		r.fire(candidate, now)

	default:
		res, err := r.wait(wait)
		if err != nil {
			r.terminate(err)
			return
		}
		if res.ready > 0 || res.interrupted {
			// fd callbacks may have rescheduled timers, recompute
			return
		}
		if stats != nil {
			stats.Timeouts++
		}
		// due at now+wait; using the intended time instead of the observed
		// one keeps periodic events from drifting
		r.fire(candidate, now+wait)
	}
}

func (r *Reactor) wait(timeout uint64) (waitResult, error) {
	stats := r.sys.stats
	if stats == nil {
		return r.mux.wait(timeout, r.sys.fds)
	}

	start := r.sys.clock.Now()
	res, err := r.mux.wait(timeout, r.sys.fds)
	if end := r.sys.clock.Now(); end >= start {
		stats.waited.Add(float64(end - start))
	}
	stats.Waits++
	stats.FdDispatched += uint64(res.dispatched)
	if res.interrupted {
		stats.Interrupts++
	}
	return res, err
}

// fire invokes ev and, if the loop goes on, records last as its last call.
func (r *Reactor) fire(ev *TimedEvent, last uint64) {
	sys := r.sys
	if sys.stats != nil || sys.report != nil || sys.logger != nil {
		var late uint64
		if now, due := sys.clock.Now(), ev.DueAt(); now > due {
			late = now - due
		}
		if sys.stats != nil {
			sys.stats.TimedFired++
			sys.stats.recordLateness(late)
		}
		if sys.report != nil {
			sys.report.Add(int64(late / 1000))
		}
		sys.logger.Trace().
			Dur("interval", ev.Interval()).
			Uint64("late_ns", late).
			Log("timed event fired")
	}

	if err := invoke(ev.cb, "timed", -1); err != nil {
		r.terminate(err)
		return
	}

	// the callback may have removed the event or moved it to another system
	if ev.sys == sys {
		ev.lastCall = last
	}
}

func (r *Reactor) terminate(err error) {
	r.state = StateTerminated
	if err == ErrStop {
		r.stopped = true
		err = nil
	}
	r.err = err

	if err != nil {
		r.sys.logger.Err().
			Err(err).
			Uint64("iterations", r.iterations).
			Log("event loop failed")
	} else {
		r.sys.logger.Info().
			Uint64("iterations", r.iterations).
			Log("event loop stopped")
	}
}
