package peak

import (
	"cmp"
	"math"
	"slices"
)

// NoDeath is the Died value of the peak that never merges.
const NoDeath = -1

// Peak is a local maximum and the extent it claimed during the sweep.
type Peak struct {
	// Born is the index of the sample that created the peak.
	Born int
	// Left and Right are the outermost indices owned by the peak.
	Left  int
	Right int
	// Died is the index of the sample that merged the peak into an older
	// one, or NoDeath.
	Died int
	// Height is seq[Born] - seq[Died], +Inf for the undying peak.
	Height float64
	// Persistence is the index distance |Died - Born|, +Inf for the
	// undying peak.
	Persistence float64
}

// Undying reports whether the peak survived the whole sweep.
func (p Peak) Undying() bool {
	return p.Died == NoDeath
}

// Width returns Right - Left.
func (p Peak) Width() int {
	return p.Right - p.Left
}

// Extract computes the persistence peaks of seq, most persistent first.
// Peaks are ordered by descending Height; peaks of equal height keep birth
// order. The result is deterministic for identical input, including ties,
// because equal values are swept in ascending index order.
func Extract(seq []float64) []Peak {
	n := len(seq)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(seq[b], seq[a]); c != 0 {
			return c
		}
		return a - b
	})

	// Arena in birth order: a smaller handle is an older peak.
	peaks := make([]Peak, 0, 16)
	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}

	for _, idx := range order {
		il, ir := -1, -1
		if idx > 0 {
			il = owner[idx-1]
		}
		if idx < n-1 {
			ir = owner[idx+1]
		}

		switch {
		case il < 0 && ir < 0:
			peaks = append(peaks, Peak{Born: idx, Left: idx, Right: idx, Died: NoDeath})
			owner[idx] = len(peaks) - 1

		case ir < 0 || il == ir:
			peaks[il].Right = idx
			owner[idx] = il

		case il < 0:
			peaks[ir].Left = idx
			owner[idx] = ir

		default:
			older, younger := il, ir
			if ir < il {
				older, younger = ir, il
			}
			peaks[younger].Died = idx

			// Only run endpoints are ever consulted as neighbours, so
			// re-owning the far edge transfers the whole merged range.
			if older == il {
				peaks[il].Right = peaks[ir].Right
				owner[peaks[il].Right] = il
			} else {
				peaks[ir].Left = peaks[il].Left
				owner[peaks[ir].Left] = ir
			}
			owner[idx] = older
		}
	}

	for i := range peaks {
		p := &peaks[i]
		if p.Undying() {
			p.Height = math.Inf(1)
			p.Persistence = math.Inf(1)
			continue
		}
		p.Height = seq[p.Born] - seq[p.Died]
		p.Persistence = math.Abs(float64(p.Died - p.Born))
	}

	slices.SortStableFunc(peaks, func(a, b Peak) int {
		return cmp.Compare(b.Height, a.Height)
	})

	return peaks
}

// Negate returns -x. It is a convenience for extracting dips.
func Negate(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = -v
	}
	return out
}
