// Package time computes time-domain statistics of current traces.
package time

import "math"

// Stats holds time-domain statistics of a sample set.
type Stats struct {
	Length   int
	Mean     float64
	Variance float64 // population variance
	Std      float64 // population standard deviation
	Skewness float64
	Kurtosis float64 // excess kurtosis
	RMS      float64
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	Range    float64 // max - min
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for numerical stability on higher-order moments.
func Calculate(signal []float64) Stats {
	s := NewStreamingStats()
	s.Update(signal)
	return s.Result()
}

// Masked computes statistics of the samples whose mask entry is set.
// Positions in the result refer to indices of signal. Entries beyond the
// shorter of the two slices are ignored.
func Masked(signal []float64, mask []bool) Stats {
	s := NewStreamingStats()
	n := min(len(signal), len(mask))
	for i := 0; i < n; i++ {
		if mask[i] {
			s.add(signal[i], i)
		}
	}
	return s.Result()
}

// Mean returns the mean of the signal using Kahan summation.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Std returns the population standard deviation of the signal.
func Std(signal []float64) float64 {
	_, variance, _, _ := Moments(signal)
	return math.Sqrt(variance)
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of the signal.
func Moments(signal []float64) (mean, variance, skewness, kurtosis float64) {
	s := Calculate(signal)
	return s.Mean, s.Variance, s.Skewness, s.Kurtosis
}

// StreamingStats accumulates statistics incrementally across multiple blocks
// of samples with results identical to [Calculate].
type StreamingStats struct {
	n      int
	mean   float64
	m2     float64
	m3     float64
	m4     float64
	sumSq  float64
	maxVal float64
	maxPos int
	minVal float64
	minPos int
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics. Positions
// continue from the samples already seen.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.add(x, s.n)
	}
}

func (s *StreamingStats) add(x float64, pos int) {
	s.n++
	ni := float64(s.n)

	delta := x - s.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(s.n-1)

	// M4 must be updated before M3, and M3 before M2.
	s.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
	s.m3 += term1*deltaN*(float64(s.n-1)-1) - 3*deltaN*s.m2
	s.m2 += term1
	s.mean += deltaN

	s.sumSq += x * x

	if s.n == 1 || x > s.maxVal {
		s.maxVal = x
		s.maxPos = pos
	}
	if s.n == 1 || x < s.minVal {
		s.minVal = x
		s.minPos = pos
	}
}

// Len returns the number of samples seen.
func (s *StreamingStats) Len() int {
	return s.n
}

// Result computes the final statistics from accumulated data. An empty
// accumulator yields zero statistics with positions -1.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{MaxPos: -1, MinPos: -1}
	}

	nf := float64(s.n)
	variance := s.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (s.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:   s.n,
		Mean:     s.mean,
		Variance: variance,
		Std:      math.Sqrt(variance),
		Skewness: skewness,
		Kurtosis: kurtosis,
		RMS:      math.Sqrt(s.sumSq / nf),
		Max:      s.maxVal,
		MaxPos:   s.maxPos,
		Min:      s.minVal,
		MinPos:   s.minPos,
		Range:    s.maxVal - s.minVal,
	}
}

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
