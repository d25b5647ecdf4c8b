package evsys

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsZeroValue(t *testing.T) {
	assert.NotPanics(t, func() {
		var s Stats
		assert.Equal(t, StatsSnapshot{}, s.Snapshot())
		s.Reset()
	})

	stats := &Stats{}
	sys, _, _ := newTestSystem(t, WithStats(stats))

	n := 0
	require.NoError(t, sys.AddTimedEvent(NewTimedEvent(time.Millisecond, func() error {
		n++
		if n == 3 {
			return ErrStop
		}
		return nil
	})))
	require.NoError(t, sys.Start())

	snap := stats.Snapshot()
	assert.Equal(t, uint64(3), snap.TimedFired)
	assert.Equal(t, uint64(3), snap.Iterations)
	assert.Equal(t, time.Microsecond, snap.LatenessMax)

	stats.Reset()
	assert.Equal(t, StatsSnapshot{}, stats.Snapshot())
}

func TestStatsLatenessClamped(t *testing.T) {
	s := NewStats()
	s.recordLateness(0)
	s.recordLateness(uint64(time.Hour))

	snap := s.Snapshot()
	assert.Equal(t, time.Microsecond, snap.LatenessP50)
	assert.GreaterOrEqual(t, snap.LatenessMax, 10*time.Second)
}
