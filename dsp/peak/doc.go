// Package peak finds peaks in 1-D sequences with zero-dimensional persistent
// homology and locates their extent with a turning-point search.
//
// # Persistence
//
// Extract sweeps the samples from the highest value to the lowest. A sample
// whose neighbours are both unclaimed gives birth to a peak; a sample next
// to one claimed neighbour extends that peak; a sample between two peaks
// merges them, and the younger peak (born later in the sweep) dies there.
// The value drop from birth to death is the peak's height: small bumps on
// noise die almost immediately while genuine modes survive long sweeps.
// Exactly one peak, born at the global maximum, never dies.
//
// # Turning points
//
// Bounds walks left and right from a peak's origin, tracking the sign of the
// local gradient. A sign flip is a strike; once strikes consecutive flips
// are seen the walk stops at the turning point where the flips began. Zero
// gradient steps are ignored, and the ends of the sequence are valid bounds.
//
// # Usage
//
//	for _, p := range peak.Extract(counts) {
//		left, right := peak.Bounds(counts, p.Born, 1)
//		...
//	}
//
// Dips are found by running both functions on the negated sequence.
package peak
