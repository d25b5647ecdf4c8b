package evsys

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/rasta-transport/evsys/everrors"
	"github.com/rasta-transport/evsys/internal"
	"github.com/rasta-transport/evsys/util"
)

type waitResult struct {
	// ready is what select(2) returned: the number of ready descriptor bits.
	ready int

	// dispatched is the number of (event, condition) callbacks invoked.
	dispatched int

	// interrupted is set when a signal ended the wait early.
	interrupted bool
}

// multiplexer waits for readiness on the enabled fd events and dispatches
// their callbacks. Its buffers are reused across waits.
type multiplexer struct {
	selector         internal.Selector
	interruptIsFatal bool
	logger           *Logger

	sets     internal.FdSets
	snapshot []util.Handle
}

// wait blocks for at most timeout nanoseconds, NoDeadline meaning forever.
//
// The returned error is ErrStop if a callback asked to stop, a *CallbackError
// if a callback failed, or a *WaitError if the wait could not be performed.
// Dispatch stops at the first callback returning an error.
func (m *multiplexer) wait(timeout uint64, fds *util.List[*FdEvent]) (res waitResult, err error) {
	nfds, err := m.prepare(fds)
	if err != nil {
		return res, err
	}

	n, err := m.selector.Select(nfds, &m.sets, internal.NanosToTimeval(timeout))
	if err != nil {
		if err == unix.EINTR && !m.interruptIsFatal {
			m.logger.Debug().Int("nfds", nfds).Log("select interrupted")
			res.interrupted = true
			return res, nil
		}

		m.logger.Err().Err(err).Int("nfds", nfds).Log("select failed")
		return res, &WaitError{
			Op:   "select",
			Fd:   -1,
			Nfds: nfds,
			Err:  fmt.Errorf("%w: %w", everrors.ErrWaitFailed, os.NewSyscallError("select", err)),
		}
	}

	res.ready = n
	if n == 0 {
		return res, nil
	}

	for _, h := range m.snapshot {
		for _, kind := range interestKinds {
			// callbacks may disable or remove events, including this one
			ev, ok := fds.Get(h)
			if !ok || !ev.enabled {
				break
			}
			if ev.interest&kind == 0 || !m.isSet(kind, ev.fd) {
				continue
			}

			res.dispatched++
			if err := invoke(ev.cb, "fd", ev.fd); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

// prepare builds the three interest sets from the enabled fd events and
// returns the nfds argument for select(2).
func (m *multiplexer) prepare(fds *util.List[*FdEvent]) (nfds int, err error) {
	m.sets.Zero()
	m.snapshot = fds.Snapshot(m.snapshot[:0])

	for _, h := range m.snapshot {
		ev, _ := fds.Get(h)
		if !ev.enabled || ev.interest == 0 {
			continue
		}

		if ev.fd < 0 || ev.fd+1 >= internal.FdSetCapacity {
			m.logger.Err().
				Int("fd", ev.fd).
				Int("capacity", internal.FdSetCapacity).
				Log("descriptor exceeds the select capacity")
			return 0, &WaitError{
				Op:   "prepare",
				Fd:   ev.fd,
				Nfds: ev.fd + 1,
				Err:  everrors.ErrDescriptorLimit,
			}
		}

		if ev.interest&Readable != 0 {
			m.sets.Read.Set(ev.fd)
		}
		if ev.interest&Writable != 0 {
			m.sets.Write.Set(ev.fd)
		}
		if ev.interest&Exceptional != 0 {
			m.sets.Except.Set(ev.fd)
		}

		if ev.fd+1 > nfds {
			nfds = ev.fd + 1
		}
	}

	return nfds, nil
}

func (m *multiplexer) isSet(kind Interest, fd int) bool {
	if fd < 0 || fd >= internal.FdSetCapacity {
		return false
	}
	switch kind {
	case Readable:
		return m.sets.Read.IsSet(fd)
	case Writable:
		return m.sets.Write.IsSet(fd)
	case Exceptional:
		return m.sets.Except.IsSet(fd)
	default:
		return false
	}
}
