// Package subpeak locates and measures dips inside an event plateau.
//
// Characterize runs persistence peak extraction on the negated plateau,
// bounds each dip with the turning-point method and reports its width, its
// area below the chord joining its bounds, its depth and the level offset
// between its two bounds:
//
//	records, err := subpeak.Characterize(plateau, subpeak.WithStrikes(2))
//
// Filter drops records whose bounds sit at different levels or whose depth
// is small next to a reference level such as the plateau depth:
//
//	kept := subpeak.Filter(records,
//		subpeak.WithMaxOffset(0.1),
//		subpeak.WithReferenceLevel(plateauLevel),
//		subpeak.WithMinRelDepth(0.05),
//	)
package subpeak
