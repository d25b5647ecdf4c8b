package evsys

import (
	"errors"
	"fmt"

	"github.com/rasta-transport/evsys/everrors"
)

// WaitError terminates the event loop when the readiness wait cannot be
// performed. Op is "prepare" when the wait-set could not be built, which is
// a configuration error, or "select" when select(2) itself failed.
type WaitError struct {
	Op   string
	Fd   int
	Nfds int
	Err  error
}

func (e *WaitError) Error() string {
	if e.Op == "prepare" {
		return fmt.Sprintf("evsys: prepare wait fd=%d nfds=%d capacity=%d: %v", e.Fd, e.Nfds, FdSetCapacity, e.Err)
	}
	return fmt.Sprintf("evsys: %s nfds=%d: %v", e.Op, e.Nfds, e.Err)
}

func (e *WaitError) Unwrap() error {
	return e.Err
}

// CallbackError terminates the event loop when a callback returns an error
// other than ErrStop.
type CallbackError struct {
	Kind string // "timed" or "fd"
	Fd   int    // -1 for timed events
	Err  error
}

func (e *CallbackError) Error() string {
	if e.Kind == "fd" {
		return fmt.Sprintf("evsys: fd event callback fd=%d: %v", e.Fd, e.Err)
	}
	return fmt.Sprintf("evsys: %s event callback: %v", e.Kind, e.Err)
}

func (e *CallbackError) Unwrap() []error {
	return []error{everrors.ErrCallback, e.Err}
}

// invoke runs cb and normalizes its result: nil to continue, exactly ErrStop
// for a stop request, or a *CallbackError.
func invoke(cb Callback, kind string, fd int) error {
	err := cb()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStop):
		return ErrStop
	default:
		return &CallbackError{Kind: kind, Fd: fd, Err: err}
	}
}
