package baseline

import (
	"errors"
	"fmt"

	"github.com/maxearle/nas2/dsp/core"
	"github.com/maxearle/nas2/dsp/hist"
	"github.com/maxearle/nas2/dsp/peak"
	"github.com/maxearle/nas2/dsp/rle"
	"github.com/maxearle/nas2/dsp/smooth"
)

// ErrNoSignificantPeak is returned when no histogram mode exceeds the area
// threshold, so no baseline candidate exists.
var ErrNoSignificantPeak = errors.New("baseline: no significant histogram peak")

// Candidate is a histogram mode that may hold the baseline.
type Candidate struct {
	// Low and High bound the mode's value range, inclusive.
	Low  float64
	High float64
	// LowBin and HighBin are the bin bounds found by the turning-point
	// search.
	LowBin  int
	HighBin int
	// Level is the midpoint of the bin where the mode peaks.
	Level float64
	// Area is the integral of the raw counts over the mode and Fraction its
	// share of the total smoothed-count integral.
	Area     float64
	Fraction float64
	// MaxRun is the longest run of consecutive samples inside [Low, High].
	MaxRun int
}

// MostPersistent returns the significant modes of the value histogram of
// values, in order of persistence.
func MostPersistent(values []float64, opts ...Option) ([]Candidate, error) {
	return mostPersistent(values, ApplyOptions(opts...))
}

func mostPersistent(values []float64, cfg Config) ([]Candidate, error) {
	h, err := hist.Compute(values, cfg.Bins)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}

	counts := h.Float()
	smoothed, err := smooth.Gaussian(counts, cfg.Sigma)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}

	// The histogram is zero outside its range; padding keeps the full mass
	// of modes sitting in the first or last bin.
	n := len(counts)
	total := core.TrapzPadded(smoothed, true, true)
	if total <= 0 {
		return nil, ErrNoSignificantPeak
	}

	var (
		candidates []Candidate
		seen       = make(map[[2]int]bool)
	)
	for _, p := range peak.Extract(smoothed) {
		l, r := peak.Bounds(smoothed, p.Born, cfg.Strikes)
		if seen[[2]int{l, r}] {
			continue
		}

		area := core.TrapzPadded(counts[l:r+1], l == 0, r == n-1)
		if !(area > cfg.AreaThreshold*total) {
			continue
		}
		seen[[2]int{l, r}] = true

		low, high := h.Range(l, r)
		runs := rle.Encode(rle.Mask(values, low, high))
		candidates = append(candidates, Candidate{
			Low:      low,
			High:     high,
			LowBin:   l,
			HighBin:  r,
			Level:    h.Midpoints[p.Born],
			Area:     area,
			Fraction: area / total,
			MaxRun:   rle.MaxRun(runs, true),
		})
	}

	if len(candidates) == 0 {
		return nil, ErrNoSignificantPeak
	}
	return candidates, nil
}

// Longest returns the index of the candidate with the longest dwell. Ties
// go to the more persistent (earlier) candidate. Returns -1 for an empty
// slice.
func Longest(candidates []Candidate) int {
	best := -1
	for i, c := range candidates {
		if best < 0 || c.MaxRun > candidates[best].MaxRun {
			best = i
		}
	}
	return best
}
