package util

import "math"

// OnlineStats tracks the min/avg/max/stddev of a stream of samples in O(1)
// time and space, using Welford's update. The zero value is empty and ready
// to use.
type OnlineStats struct {
	n    uint64
	min  float64
	max  float64
	mean float64
	m2   float64
}

func (s *OnlineStats) Add(xs ...float64) {
	for _, x := range xs {
		if s.n == 0 || x < s.min {
			s.min = x
		}
		if s.n == 0 || x > s.max {
			s.max = x
		}

		s.n++
		delta := x - s.mean
		s.mean += delta / float64(s.n)
		s.m2 += delta * (x - s.mean)
	}
}

func (s *OnlineStats) Count() uint64 {
	return s.n
}

// Min is 0 while no sample was added.
func (s *OnlineStats) Min() float64 {
	return s.min
}

func (s *OnlineStats) Max() float64 {
	return s.max
}

func (s *OnlineStats) Mean() float64 {
	return s.mean
}

// StdDev is the sample standard deviation, 0 with fewer than two samples.
func (s *OnlineStats) StdDev() float64 {
	if s.n < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.n-1))
}

func (s *OnlineStats) Reset() {
	*s = OnlineStats{}
}
