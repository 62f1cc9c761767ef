package hist

import (
	"errors"
	"fmt"
	"math"

	"github.com/maxearle/nas2/dsp/core"
)

// Errors returned by Compute.
var (
	ErrEmptyInput      = errors.New("hist: empty input")
	ErrInvalidBins     = errors.New("hist: bin count must be >= 1")
	ErrNonFinite       = errors.New("hist: non-finite value")
	ErrDegenerateRange = errors.New("hist: degenerate value range")
)

// Histogram holds equal-width bin counts over the range of a sample set.
type Histogram struct {
	Counts    []int
	Midpoints []float64
	Edges     [][2]float64
	Spacing   float64
	Min       float64
	Max       float64
}

// Bin describes one histogram bin.
type Bin struct {
	Index int
	Left  float64
	Right float64
	Mid   float64
	Count int
}

// Compute bins values into nbins equal-width bins spanning [min, max].
func Compute(values []float64, nbins int) (Histogram, error) {
	if nbins < 1 {
		return Histogram{}, fmt.Errorf("%w: %d", ErrInvalidBins, nbins)
	}
	if len(values) == 0 {
		return Histogram{}, ErrEmptyInput
	}

	for i, v := range values {
		if !core.IsFinite(v) {
			return Histogram{}, fmt.Errorf("%w at index %d: %v", ErrNonFinite, i, v)
		}
	}

	minVal, _, maxVal, _ := core.MinMax(values)
	if minVal == maxVal {
		return Histogram{}, fmt.Errorf("%w: all %d values equal %v", ErrDegenerateRange, len(values), minVal)
	}

	spacing := (maxVal - minVal) / float64(nbins)
	h := Histogram{
		Counts:    make([]int, nbins),
		Midpoints: make([]float64, nbins),
		Edges:     make([][2]float64, nbins),
		Spacing:   spacing,
		Min:       minVal,
		Max:       maxVal,
	}

	for i := range h.Edges {
		left := minVal + float64(i)*spacing
		right := minVal + float64(i+1)*spacing
		if i == nbins-1 {
			right = maxVal
		}
		h.Edges[i] = [2]float64{left, right}
		h.Midpoints[i] = 0.5 * (left + right)
	}

	for _, v := range values {
		h.Counts[h.index(v)]++
	}

	return h, nil
}

// index returns the bin holding v. The arithmetic guess is corrected against
// the stored edges so that counting agrees exactly with the Edges table.
func (h Histogram) index(v float64) int {
	n := len(h.Counts)
	idx := int(math.Floor((v - h.Min) / h.Spacing))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}

	for idx > 0 && v < h.Edges[idx][0] {
		idx--
	}
	for idx < n-1 && v >= h.Edges[idx][1] {
		idx++
	}

	return idx
}

// Len returns the number of bins.
func (h Histogram) Len() int {
	return len(h.Counts)
}

// Total returns the number of counted values.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Float returns the counts as float64 values.
func (h Histogram) Float() []float64 {
	out := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		out[i] = float64(c)
	}
	return out
}

// Bins returns a per-bin view of the histogram.
func (h Histogram) Bins() []Bin {
	out := make([]Bin, len(h.Counts))
	for i := range out {
		out[i] = Bin{
			Index: i,
			Left:  h.Edges[i][0],
			Right: h.Edges[i][1],
			Mid:   h.Midpoints[i],
			Count: h.Counts[i],
		}
	}
	return out
}

// Range returns the value interval covered by bins lo through hi inclusive:
// the left edge of lo and the right edge of hi. Indices are clamped to the
// valid bin range and swapped if given in reverse order.
func (h Histogram) Range(lo, hi int) (low, high float64) {
	n := len(h.Counts)
	if n == 0 {
		return 0, 0
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = core.ClampIndex(lo, n)
	hi = core.ClampIndex(hi, n)
	return h.Edges[lo][0], h.Edges[hi][1]
}
