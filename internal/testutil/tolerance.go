package testutil

import (
	"fmt"
	"math"
	"testing"
)

// MaxAbsDiff returns the largest absolute element difference of a and b and
// the index where it occurs. The index is -1 for empty slices. NaN in either
// slice at the same index counts as equal only when both are NaN.
func MaxAbsDiff(a, b []float64) (diff float64, at int, err error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	at = -1
	for i := range a {
		d := math.Abs(a[i] - b[i])
		switch {
		case math.IsNaN(a[i]) && math.IsNaN(b[i]):
			continue
		case math.IsNaN(d):
			return math.NaN(), i, nil
		}
		if at < 0 || d > diff {
			diff, at = d, i
		}
	}
	return diff, at, nil
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if the
// worst element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	diff, at, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if at >= 0 && !(diff <= eps) {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", at, got[at], want[at], diff, eps)
	}
}

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if !(math.Abs(got-want) <= eps) {
		t.Fatalf("%s: got %v, want %v (eps %v)", name, got, want, eps)
	}
}

// RequireFinite fails t on the first NaN or Inf element.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
