package peak

// Bounds returns the extent [left, right] of the peak or dip whose extremum
// is at origin, using the turning-point method.
//
// Each walk advances one sample at a time and compares it with the previous
// sample. Zero differences are skipped. A difference with the running sign
// (or the first non-zero difference) resets the strike count; a difference
// against it is a strike. When strikes consecutive strikes have been seen
// the walk stops at the turning point, the last sample before the first of
// those strikes. Walks that leave the sequence stop at its end.
//
// strikes below 1 is treated as 1 and origin is clamped into the sequence.
// The result always satisfies 0 <= left <= origin <= right <= len(seq)-1.
// An empty sequence returns (0, 0).
func Bounds(seq []float64, origin, strikes int) (left, right int) {
	n := len(seq)
	if n == 0 {
		return 0, 0
	}
	if origin < 0 {
		origin = 0
	}
	if origin > n-1 {
		origin = n - 1
	}
	if strikes < 1 {
		strikes = 1
	}

	return walk(seq, origin, -1, strikes), walk(seq, origin, +1, strikes)
}

// walk searches from origin in direction dir (-1 or +1).
func walk(seq []float64, origin, dir, strikes int) int {
	n := len(seq)
	running := 0
	count := 0
	turn := origin

	for pos := origin + dir; pos >= 0 && pos < n; pos += dir {
		s := sign(seq[pos] - seq[pos-dir])
		if s == 0 {
			continue
		}

		if running == 0 || s == running {
			running = s
			count = 0
			continue
		}

		if count == 0 {
			turn = pos - dir
		}
		count++
		if count >= strikes {
			return turn
		}
	}

	if dir < 0 {
		return 0
	}
	return n - 1
}

// sign returns -1, 0 or +1. NaN maps to 0 and is skipped like a flat step.
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
