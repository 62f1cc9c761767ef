// Package trace runs the full analysis of one current trace.
//
// Analyze removes the baseline drift, finds the events below the event
// threshold and, for each one, re-levels it against its surrounding
// baseline, computes its summary attributes and characterizes the dips in
// its plateau:
//
//	res, err := trace.Analyze(samples,
//		trace.WithSampleRate(250e3),
//		trace.WithThresholdSigma(5),
//		trace.WithGapTolerance(100),
//		trace.WithBerth(200),
//	)
//	for _, ev := range res.Events {
//		fmt.Println(ev.Window, ev.Summary.Mean, len(ev.Peaks))
//	}
//
// A failing stage aborts the trace and its error is returned wrapped, so
// callers processing many traces can log it and move on.
package trace
