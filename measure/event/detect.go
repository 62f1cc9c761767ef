package event

// Window is a closed interval [Start, End] of sample indices.
type Window struct {
	Start int
	End   int
}

// Len returns the number of samples in the window.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Contains reports whether index i lies in the window.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i <= w.End
}

// Detect returns the windows of trace where samples fall strictly below
// threshold. Runs of hits separated by gaps of at most gap samples, measured
// as next.Start - cur.End, are merged. A negative gap is treated as 0, so
// only overlapping runs would merge and every run is kept apart.
//
// The result is sorted, disjoint and nil when no sample is a hit.
func Detect(trace []float64, threshold float64, gap int) []Window {
	gap = max(gap, 0)

	var out []Window
	inRun := false
	var cur Window

	for i, v := range trace {
		hit := v < threshold
		switch {
		case hit && !inRun:
			inRun = true
			cur = Window{Start: i, End: i}
		case hit:
			cur.End = i
		case inRun:
			inRun = false
			out = appendMerged(out, cur, gap)
		}
	}
	if inRun {
		out = appendMerged(out, cur, gap)
	}

	return out
}

// appendMerged appends w, folding it into the last window when the gap
// between them is within tolerance. Runs arrive in order, so one pass
// reaches the fixed point of repeated merging.
func appendMerged(out []Window, w Window, gap int) []Window {
	if n := len(out); n > 0 && w.Start-out[n-1].End <= gap {
		out[n-1].End = w.End
		return out
	}
	return append(out, w)
}

// Pad widens w by berth samples on each side, clamped to [0, n-1].
func Pad(w Window, berth, n int) Window {
	berth = max(berth, 0)
	return Window{
		Start: max(w.Start-berth, 0),
		End:   min(w.End+berth, n-1),
	}
}
