package evsys

import (
	"strings"

	"github.com/rasta-transport/evsys/everrors"
	"github.com/rasta-transport/evsys/internal"
)

// Callback is invoked by the event loop when a timed event is due or a
// watched descriptor is ready. Returning nil keeps the loop running.
// Returning ErrStop terminates the loop gracefully; any other error
// terminates it and is reported by Reactor.Run as a *CallbackError.
//
// State needed by the callback is captured by the closure.
type Callback func() error

// ErrStop is returned by a Callback to request loop termination.
var ErrStop = everrors.ErrStop

// NoDeadline is the wait duration reported when no timed event is enabled.
const NoDeadline = internal.NoDeadline

// FdSetCapacity is the select(2) descriptor capacity. The highest watched
// descriptor plus one must stay below it.
const FdSetCapacity = internal.FdSetCapacity

// Interest is the set of readiness conditions an FdEvent watches.
type Interest uint8

const (
	Readable Interest = 1 << iota
	Writable
	Exceptional
)

// interestKinds is the order in which ready conditions are dispatched.
var interestKinds = [...]Interest{Readable, Writable, Exceptional}

// Has reports whether all conditions in o are part of i.
func (i Interest) Has(o Interest) bool {
	return o != 0 && i&o == o
}

func (i Interest) String() string {
	if i == 0 {
		return "none"
	}

	var parts []string
	if i&Readable != 0 {
		parts = append(parts, "readable")
	}
	if i&Writable != 0 {
		parts = append(parts, "writable")
	}
	if i&Exceptional != 0 {
		parts = append(parts, "exceptional")
	}
	return strings.Join(parts, "|")
}
