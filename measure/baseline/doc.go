// Package baseline estimates and removes the open-pore baseline of a
// nanopore current trace.
//
// A trace spends most of its time at the open-pore current, interrupted by
// translocation events at lower levels. The all-points histogram of such a
// trace is multimodal, so the baseline cannot be taken as the mean. Instead
// MostPersistent finds the histogram modes by persistent homology, bounds
// each mode with the turning-point method and keeps the modes holding a
// significant share of the samples. For each mode it reports the longest
// contiguous run of samples inside the mode's value range: the baseline is
// the level the trace dwells at, not merely the most frequent one.
//
// Correct picks the candidate with the longest dwell, fits a straight line
// through the samples in its range and subtracts it from the whole trace,
// removing both the offset and any slow drift.
//
// # Usage
//
//	corrected, est, err := baseline.Correct(trace)
//	switch {
//	case errors.Is(err, hist.ErrDegenerateRange),
//		errors.Is(err, baseline.ErrNoSignificantPeak),
//		errors.Is(err, baseline.ErrInsufficientBaselineSamples):
//		// skip this trace
//	}
//	threshold := -5 * est.Noise
package baseline
