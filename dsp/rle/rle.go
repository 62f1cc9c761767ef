// Package rle run-length encodes boolean masks.
//
// The baseline estimator uses run lengths to tell a genuine dwell at a
// current level (one long contiguous run) apart from a level that is merely
// visited often.
package rle

// Runs is the run-length encoding of a boolean mask as parallel slices:
// run i covers Lengths[i] samples starting at Starts[i], all equal to
// Values[i]. Consecutive runs always have different values.
type Runs struct {
	Lengths []int
	Starts  []int
	Values  []bool
}

// Encode returns the run-length encoding of mask. An empty mask yields an
// empty Runs.
func Encode(mask []bool) Runs {
	var r Runs
	if len(mask) == 0 {
		return r
	}

	start := 0
	for i := 1; i <= len(mask); i++ {
		if i < len(mask) && mask[i] == mask[start] {
			continue
		}
		r.Lengths = append(r.Lengths, i-start)
		r.Starts = append(r.Starts, start)
		r.Values = append(r.Values, mask[start])
		start = i
	}

	return r
}

// Len returns the number of runs.
func (r Runs) Len() int {
	return len(r.Lengths)
}

// Total returns the length of the encoded mask.
func (r Runs) Total() int {
	total := 0
	for _, n := range r.Lengths {
		total += n
	}
	return total
}

// Decode expands r back into the mask it encodes.
func Decode(r Runs) []bool {
	out := make([]bool, 0, r.Total())
	for i, n := range r.Lengths {
		for j := 0; j < n; j++ {
			out = append(out, r.Values[i])
		}
	}
	return out
}

// MaxRun returns the length of the longest run equal to value, or 0 when no
// such run exists.
func MaxRun(r Runs, value bool) int {
	best := 0
	for i, n := range r.Lengths {
		if r.Values[i] == value && n > best {
			best = n
		}
	}
	return best
}

// MeanRun returns the mean length of runs equal to value, or 0 when no such
// run exists.
func MeanRun(r Runs, value bool) float64 {
	total, count := 0, 0
	for i, n := range r.Lengths {
		if r.Values[i] == value {
			total += n
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// Mask returns a mask that is true where lo <= x[i] <= hi.
func Mask(x []float64, lo, hi float64) []bool {
	out := make([]bool, len(x))
	for i, v := range x {
		out[i] = v >= lo && v <= hi
	}
	return out
}
