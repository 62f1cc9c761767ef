package subpeak

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/maxearle/nas2/dsp/core"
	"github.com/maxearle/nas2/dsp/peak"
	"github.com/maxearle/nas2/dsp/smooth"
)

// Record describes one dip of a plateau. Indices are relative to the
// plateau passed to Characterize.
type Record struct {
	// Origin is the sample where the dip was found.
	Origin int
	// Start and End are the dip bounds, inclusive. Width is End - Start.
	Start int
	End   int
	Width int
	// Area is the integral of the region, shifted so its maximum is 0,
	// minus the area under the chord between its two end samples. Dips are
	// negative. When one bound is the region maximum the chord matches a
	// triangle on the lower endpoint; when both bounds sit below the
	// maximum the trapezoid under the chord encloses more than that triangle.
	Area float64
	// Depth is the minimum of the shifted region.
	Depth float64
	// Offset is the absolute level difference between the two bounds.
	Offset float64
}

// Characterize finds and measures the dips of plateau. Records are sorted
// by Area ascending, deepest first, then by Start. Regions found from more
// than one origin are reported once. An empty plateau yields no records.
func Characterize(plateau []float64, opts ...Option) ([]Record, error) {
	if len(plateau) == 0 {
		return nil, nil
	}
	cfg := ApplyOptions(opts...)

	search := plateau
	if cfg.Sigma > 0 {
		smoothed, err := smooth.Gaussian(plateau, cfg.Sigma)
		if err != nil {
			return nil, fmt.Errorf("subpeak: %w", err)
		}
		search = smoothed
	}
	search = peak.Negate(search)

	seen := make(map[[2]int]bool)
	var records []Record
	for _, p := range peak.Extract(search) {
		l, r := peak.Bounds(search, p.Born, cfg.Strikes)
		if seen[[2]int{l, r}] {
			continue
		}
		seen[[2]int{l, r}] = true

		rec := measure(plateau, l, r)
		rec.Origin = p.Born
		records = append(records, rec)
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		if c := cmp.Compare(a.Area, b.Area); c != 0 {
			return c
		}
		return a.Start - b.Start
	})
	return records, nil
}

// measure computes the record of plateau[l:r+1].
func measure(plateau []float64, l, r int) Record {
	region := plateau[l : r+1]
	_, _, top, _ := core.MinMax(region)

	shifted := make([]float64, len(region))
	for i, v := range region {
		shifted[i] = v - top
	}
	depth, _, _, _ := core.MinMax(shifted)

	width := r - l
	chord := 0.5 * float64(width) * (shifted[0] + shifted[len(shifted)-1])

	return Record{
		Start:  l,
		End:    r,
		Width:  width,
		Area:   core.Trapz(shifted) - chord,
		Depth:  depth,
		Offset: math.Abs(plateau[l] - plateau[r]),
	}
}

// Filter returns the records that pass the filter options, in input order.
func Filter(records []Record, opts ...FilterOption) []Record {
	cfg := ApplyFilterOptions(opts...)

	var out []Record
	for _, rec := range records {
		if !(rec.Offset < cfg.MaxOffset) {
			continue
		}
		if cfg.ReferenceLevel != 0 && !(rec.Depth/cfg.ReferenceLevel > cfg.MinRelDepth) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
