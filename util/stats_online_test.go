package util

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 0.001

func TestOnlineStats1(t *testing.T) {
	var s OnlineStats

	check := func() {
		assert.InDelta(t, 2.5, s.Mean(), epsilon)
		assert.InDelta(t, 1.0, s.Min(), epsilon)
		assert.InDelta(t, 4.0, s.Max(), epsilon)
		assert.InDelta(t, 1.29, s.StdDev(), 0.01)
		assert.Equal(t, uint64(4), s.Count())
	}

	s.Add(1.0, 2.0, 3.0, 4.0)
	check()

	s.Reset()
	assert.Equal(t, uint64(0), s.Count())
	assert.Equal(t, 0.0, s.Mean())

	s.Add(4.0, 3.0)
	s.Add(2.0, 1.0)
	check()
}

func TestOnlineStatsSingleSample(t *testing.T) {
	var s OnlineStats
	s.Add(-7)
	assert.Equal(t, -7.0, s.Min())
	assert.Equal(t, -7.0, s.Max())
	assert.Equal(t, -7.0, s.Mean())
	assert.Equal(t, 0.0, s.StdDev())
}

func TestOnlineStatsMatchesTwoPass(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	var s OnlineStats
	xs := make([]float64, 10_000)
	for i := range xs {
		xs[i] = rnd.NormFloat64()*50 + 1000
	}
	s.Add(xs...)

	var sum float64
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for _, x := range xs {
		sum += x
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	stddev := math.Sqrt(sq / float64(len(xs)-1))

	assert.InDelta(t, mean, s.Mean(), epsilon)
	assert.InDelta(t, stddev, s.StdDev(), epsilon)
	assert.Equal(t, lo, s.Min())
	assert.Equal(t, hi, s.Max())
}
