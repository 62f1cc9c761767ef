// Package fingerprint assigns detected sub-peaks to the positions of an
// ideal layout, such as the designed sites of a DNA barcode.
//
// The fingerprint of a set of positions is the matrix of their pairwise
// differences. It does not change when every position is shifted, so an
// event whose peaks are offset from the ideal layout still matches it. Match
// searches which observed peaks, in which order and with which orientation,
// best reproduce the fingerprint of some subset of the ideal positions:
//
//	ideal := []float64{29.0 / 190, 43.0 / 190, 62.0 / 190, 84.0 / 190}
//	a, err := fingerprint.Match(ideal, observed)
//	labels := a.Labels(len(observed)) // ideal index per observed peak, or -1
//
// The search is exhaustive and grows factorially with the number of peaks.
package fingerprint
