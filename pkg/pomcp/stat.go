package pomcp

import "math"

// Statistic is a running aggregate over observed values, with an optional
// prior that lets a freshly created node start with a pseudo-sample.
// Invariant: mean = total / count whenever count > 0.
type Statistic struct {
	count    int
	total    float64
	sumSq    float64
	max      float64
	min      float64
	hasRange bool

	priorCount int
	priorValue float64
}

// NewStatistic returns a zeroed Statistic with no prior.
func NewStatistic() Statistic {
	return Statistic{}
}

// SetPrior installs a pseudo-sample used by Mean when count == 0.
func (s *Statistic) SetPrior(count int, value float64) {
	s.priorCount = count
	s.priorValue = value
}

// Clear resets the statistic to its zero state, keeping the prior.
func (s *Statistic) Clear() {
	s.count = 0
	s.total = 0
	s.sumSq = 0
	s.max = 0
	s.min = 0
	s.hasRange = false
}

// Add records a single observation.
func (s *Statistic) Add(x float64) {
	s.AddWeighted(x, 1)
}

// AddWeighted records n repeated observations of x, as a single update.
func (s *Statistic) AddWeighted(x float64, n int) {
	if n <= 0 {
		return
	}
	s.count += n
	s.total += x * float64(n)
	s.sumSq += x * x * float64(n)
	if !s.hasRange {
		s.max, s.min = x, x
		s.hasRange = true
	} else {
		if x > s.max {
			s.max = x
		}
		if x < s.min {
			s.min = x
		}
	}
}

// Subtract peels off one previously added sample, undoing a single
// back-up.
func (s *Statistic) Subtract(x float64) {
	if s.count == 0 {
		return
	}
	s.count--
	s.total -= x
	s.sumSq -= x * x
}

// Count returns the number of real (non-prior) observations.
func (s *Statistic) Count() int {
	return s.count
}

// Total returns the sum of all real observations.
func (s *Statistic) Total() float64 {
	return s.total
}

// Mean returns total/count, falling back to the prior value (or zero, if
// no prior is set) when count == 0.
func (s *Statistic) Mean() float64 {
	if s.count == 0 {
		if s.priorCount > 0 {
			return s.priorValue
		}
		return 0
	}
	return s.total / float64(s.count)
}

// Variance returns the population variance (divided by count) of the
// observed values, computed from the running sum and sum-of-squares.
// Priors never contribute.
func (s *Statistic) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	mean := s.total / float64(s.count)
	v := s.sumSq/float64(s.count) - mean*mean
	if v < 0 {
		// guards against floating point drift
		v = 0
	}
	return v
}

// Max returns the largest observed value, or the prior value if no real
// observation was ever added.
func (s *Statistic) Max() float64 {
	if !s.hasRange {
		return s.priorValue
	}
	return s.max
}

// Min returns the smallest observed value, or the prior value if no real
// observation was ever added.
func (s *Statistic) Min() float64 {
	if !s.hasRange {
		return s.priorValue
	}
	return s.min
}

// StdErr returns the standard error of the mean, sqrt(variance/count).
func (s *Statistic) StdErr() float64 {
	if s.count == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.count))
}
