// Package hist bins sample values into equal-width histograms.
//
// A histogram over values v partitions [min(v), max(v)] into n half-open bins
// [edge_i, edge_i+1). The last bin is closed on the right so that the maximum
// value is counted, which keeps the invariant
//
//	sum(h.Counts) == len(v)
//
// Constant input has no range to partition and is rejected with
// ErrDegenerateRange.
//
// # Usage
//
//	h, err := hist.Compute(trace, 50)
//	if errors.Is(err, hist.ErrDegenerateRange) {
//		// skip this trace
//	}
//	for _, b := range h.Bins() {
//		fmt.Println(b.Mid, b.Count)
//	}
package hist
