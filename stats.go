package evsys

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/rasta-transport/evsys/util"
)

// Stats collects event loop counters and a histogram of how late timed
// events fire relative to their due time, in microseconds.
//
// Stats is written by the loop goroutine without synchronization. Read it
// from that goroutine (e.g. inside a callback) or after Run returned.
type Stats struct {
	Iterations   uint64
	TimedFired   uint64
	FdDispatched uint64
	Waits        uint64
	Timeouts     uint64
	Interrupts   uint64

	lateness *hdrhistogram.Histogram
	waited   util.OnlineStats
}

type StatsSnapshot struct {
	Iterations   uint64
	TimedFired   uint64
	FdDispatched uint64
	Waits        uint64
	Timeouts     uint64
	Interrupts   uint64

	LatenessP50 time.Duration
	LatenessP99 time.Duration
	LatenessMax time.Duration

	// WaitMean and WaitMax cover each readiness wait, fd dispatch included.
	WaitMean time.Duration
	WaitMax  time.Duration
}

const maxLatenessMicros = 10_000_000

// NewStats returns empty Stats. The zero value is usable as well.
func NewStats() *Stats {
	s := &Stats{}
	s.histogram()
	return s
}

func (s *Stats) histogram() *hdrhistogram.Histogram {
	if s.lateness == nil {
		s.lateness = hdrhistogram.New(1, maxLatenessMicros, 3)
	}
	return s.lateness
}

func (s *Stats) Snapshot() StatsSnapshot {
	h := s.histogram()
	return StatsSnapshot{
		Iterations:   s.Iterations,
		TimedFired:   s.TimedFired,
		FdDispatched: s.FdDispatched,
		Waits:        s.Waits,
		Timeouts:     s.Timeouts,
		Interrupts:   s.Interrupts,
		LatenessP50:  time.Duration(h.ValueAtPercentile(50)) * time.Microsecond,
		LatenessP99:  time.Duration(h.ValueAtPercentile(99)) * time.Microsecond,
		LatenessMax:  time.Duration(h.Max()) * time.Microsecond,
		WaitMean:     time.Duration(s.waited.Mean()),
		WaitMax:      time.Duration(s.waited.Max()),
	}
}

func (s *Stats) Reset() {
	h := s.histogram()
	h.Reset()
	*s = Stats{lateness: h}
}

// recordLateness takes nanoseconds and stores whole microseconds, clamped to
// the histogram's range.
func (s *Stats) recordLateness(ns uint64) {
	us := int64(ns / 1000)
	if us < 1 {
		us = 1
	} else if us > maxLatenessMicros {
		us = maxLatenessMicros
	}
	_ = s.histogram().RecordValue(us)
}
