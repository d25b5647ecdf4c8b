package everrors

import "errors"

var (
	// ErrStop is returned by a callback to terminate the event loop gracefully.
	ErrStop = errors.New("event loop stop requested")

	ErrDescriptorLimit   = errors.New("descriptor exceeds the select capacity")
	ErrWaitFailed        = errors.New("readiness wait failed")
	ErrCallback          = errors.New("callback failed")
	ErrAlreadyRegistered = errors.New("event already registered")
	ErrNotRegistered     = errors.New("event not registered with this event system")
	ErrTerminated        = errors.New("event loop terminated")
	ErrAlreadyRunning    = errors.New("event loop already running")
	ErrNilCallback       = errors.New("nil callback")
	ErrTimerClosed       = errors.New("timer closed")
)
