// Package event segments a baseline-corrected trace into events and
// measures them.
//
// An event is a stretch of samples below a threshold. Detect finds the
// stretches and merges those separated by short returns to baseline:
//
//	windows := event.Detect(corrected, -0.5, 100)
//
// Each window can then be cut out with some surrounding baseline (berth),
// re-levelled against that local baseline and summarized. Near the trace
// ends the berth is clamped and Edges reports how much baseline is left:
//
//	w := windows[0]
//	padded, samples := event.Extract(corrected, w, berth)
//	left, right := event.Edges(w, padded, berth)
//	fixed, err := event.FixBaseline(samples, left, right)
//	sum, err := event.Summarize(fixed[w.Start-padded.Start:w.End-padded.Start+1], rate)
//
// Windows are closed intervals of sample indices.
package event
