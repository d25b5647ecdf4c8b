package evsys

import (
	"fmt"
	"io"
)

type OptionType uint8

const (
	TypeLogger OptionType = iota
	TypeClock
	TypeStats
	TypeInterruptIsFatal
	TypeLatencyReport
	MaxOption
)

func (t OptionType) String() string {
	switch t {
	case TypeLogger:
		return "logger"
	case TypeClock:
		return "clock"
	case TypeStats:
		return "stats"
	case TypeInterruptIsFatal:
		return "interrupt_is_fatal"
	case TypeLatencyReport:
		return "latency_report"
	default:
		panic(fmt.Errorf("invalid option %d", t))
	}
}

type Option interface {
	Type() OptionType
	Value() interface{}
}

type optionLogger struct {
	v *Logger
}

func (o *optionLogger) Type() OptionType {
	return TypeLogger
}

func (o *optionLogger) Value() interface{} {
	return o.v
}

// WithLogger sets the logger. A nil logger disables logging, which is the
// default.
func WithLogger(l *Logger) Option {
	return &optionLogger{
		v: l,
	}
}

type optionClock struct {
	v Clock
}

func (o *optionClock) Type() OptionType {
	return TypeClock
}

func (o *optionClock) Value() interface{} {
	return o.v
}

// WithClock replaces the monotonic clock, e.g. with a fake one in tests.
func WithClock(c Clock) Option {
	return &optionClock{
		v: c,
	}
}

type optionStats struct {
	v *Stats
}

func (o *optionStats) Type() OptionType {
	return TypeStats
}

func (o *optionStats) Value() interface{} {
	return o.v
}

// WithStats makes the event loop record its counters and timer lateness in s.
func WithStats(s *Stats) Option {
	return &optionStats{
		v: s,
	}
}

type optionInterruptIsFatal struct {
	v bool
}

func (o *optionInterruptIsFatal) Type() OptionType {
	return TypeInterruptIsFatal
}

func (o *optionInterruptIsFatal) Value() interface{} {
	return o.v
}

// WithInterruptIsFatal controls what happens when select(2) is interrupted
// by a signal. By default the wait counts as a spurious wake-up and the loop
// re-evaluates its deadlines. If v is true, the interruption is a wait
// failure and terminates the loop.
func WithInterruptIsFatal(v bool) Option {
	return &optionInterruptIsFatal{
		v: v,
	}
}

type latencyReportValue struct {
	w       io.Writer
	samples int64
}

type optionLatencyReport struct {
	v latencyReportValue
}

func (o *optionLatencyReport) Type() OptionType {
	return TypeLatencyReport
}

func (o *optionLatencyReport) Value() interface{} {
	return o.v
}

// WithLatencyReport prints a histogram of timed event lateness to w every
// samples firings.
func WithLatencyReport(w io.Writer, samples int64) Option {
	return &optionLatencyReport{
		v: latencyReportValue{w: w, samples: samples},
	}
}
