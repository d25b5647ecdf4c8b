package evsys

import (
	"github.com/rasta-transport/evsys/util"
)

// computeNext picks the timed event to fire next and how long to wait for
// it. The first enabled event already due, in registration order, wins with
// a zero wait; otherwise the earliest deadline wins, ties going to the
// earlier registered event. With no enabled event it returns NoDeadline and
// a nil candidate.
func computeNext(timed *util.List[*TimedEvent], now uint64) (wait uint64, candidate *TimedEvent) {
	wait = NoDeadline
	for _, ev := range timed.All() {
		if !ev.enabled {
			continue
		}

		due := ev.DueAt()
		if due <= now {
			return 0, ev
		}

		if d := due - now; d < wait {
			wait = d
			candidate = ev
		}
	}
	return wait, candidate
}
