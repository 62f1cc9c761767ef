package event

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maxearle/nas2/internal/testutil"
)

func TestExtract(t *testing.T) {
	trace := testutil.Ramp(0, 1, 100)

	padded, samples := Extract(trace, Window{10, 20}, 15)
	if padded != (Window{0, 35}) {
		t.Fatalf("padded = %+v, want {0 35}", padded)
	}
	if len(samples) != 36 || samples[0] != 0 || samples[35] != 35 {
		t.Fatalf("samples = %v", samples)
	}

	samples[0] = 42
	if trace[0] != 0 {
		t.Fatal("Extract must copy the samples")
	}

	if _, s := Extract(nil, Window{0, 3}, 2); s != nil {
		t.Fatalf("empty trace gave %v", s)
	}
}

func TestFixBaseline(t *testing.T) {
	samples := []float64{1, 3, 5, 5, 5, 3, 1}

	got, err := FixBaseline(samples, 2, 2)
	if err != nil {
		t.Fatalf("FixBaseline() error = %v", err)
	}
	if diff := cmp.Diff([]float64{-1, 1, 3, 3, 3, 1, -1}, got); diff != "" {
		t.Fatalf("FixBaseline() mismatch (-want +got):\n%s", diff)
	}
	if samples[0] != 1 {
		t.Fatal("FixBaseline must not modify its input")
	}

	got, err = FixBaseline(samples, 0, 0)
	if err != nil {
		t.Fatalf("FixBaseline(0, 0) error = %v", err)
	}
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Fatalf("no edges must copy unchanged (-want +got):\n%s", diff)
	}

	if _, err := FixBaseline(samples[:3], 2, 2); !errors.Is(err, ErrShortEvent) {
		t.Fatalf("short event error = %v, want ErrShortEvent", err)
	}
	if _, err := FixBaseline(nil, 0, 0); !errors.Is(err, ErrShortEvent) {
		t.Fatalf("empty event error = %v, want ErrShortEvent", err)
	}
}

func TestFixBaseline_OneSided(t *testing.T) {
	// Event touching the end of the trace: only leading baseline.
	samples := []float64{2, 2, -3, -3, -3}
	got, err := FixBaseline(samples, 2, 0)
	if err != nil {
		t.Fatalf("FixBaseline() error = %v", err)
	}
	if diff := cmp.Diff([]float64{0, 0, -5, -5, -5}, got); diff != "" {
		t.Fatalf("leading edge mismatch (-want +got):\n%s", diff)
	}

	got, err = FixBaseline([]float64{-3, -3, 2}, -4, 1)
	if err != nil {
		t.Fatalf("FixBaseline() error = %v", err)
	}
	if diff := cmp.Diff([]float64{-5, -5, 0}, got); diff != "" {
		t.Fatalf("trailing edge mismatch (-want +got):\n%s", diff)
	}
}

func TestEdges(t *testing.T) {
	tests := []struct {
		name        string
		w, padded   Window
		berth       int
		left, right int
	}{
		{"full", Window{100, 200}, Window{50, 250}, 50, 25, 25},
		{"end clamped", Window{1900, 1999}, Window{1700, 1999}, 200, 100, 0},
		{"start clamped", Window{3, 10}, Window{0, 50}, 40, 3, 20},
		{"berth beyond trace", Window{10, 14}, Window{0, 299}, 400, 10, 200},
		{"no berth", Window{10, 14}, Window{10, 14}, 0, 0, 0},
		{"odd berth", Window{10, 14}, Window{5, 19}, 5, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := Edges(tt.w, tt.padded, tt.berth)
			if left != tt.left || right != tt.right {
				t.Fatalf("Edges() = %d, %d, want %d, %d", left, right, tt.left, tt.right)
			}
		})
	}
}

func TestSummarize_Flat(t *testing.T) {
	sum, err := Summarize(testutil.DC(-1, 10), 2)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if sum.Samples != 10 {
		t.Errorf("Samples = %d, want 10", sum.Samples)
	}
	testutil.RequireNearlyEqual(t, "duration", sum.Duration, 5, 1e-12)
	testutil.RequireNearlyEqual(t, "ecd", sum.ECD, -4.5, 1e-12)
	testutil.RequireNearlyEqual(t, "mean", sum.Mean, -1, 1e-12)
	testutil.RequireNearlyEqual(t, "ffap", sum.FFAP, 1.0/9, 1e-12)
	testutil.RequireNearlyEqual(t, "lfap", sum.LFAP, 1.0/9, 1e-12)
	testutil.RequireNearlyEqual(t, "skew", sum.Skew, 1, 1e-12)
}

func TestSummarize_Skewed(t *testing.T) {
	// Deepening towards the end: more area under the rising ramp.
	sum, err := Summarize([]float64{0, -1, -2, -3, -4}, 1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	testutil.RequireNearlyEqual(t, "skew", sum.Skew, 2.2, 1e-12)

	sum, err = Summarize(testutil.Ramp(0, -1, 10), 1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	testutil.RequireNearlyEqual(t, "ffap", sum.FFAP, 0.5/40.5, 1e-12)
	testutil.RequireNearlyEqual(t, "lfap", sum.LFAP, 8.5/40.5, 1e-12)
	if sum.Skew <= 1 {
		t.Fatalf("Skew = %g, want > 1", sum.Skew)
	}
}

func TestSummarize_Errors(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Summarize([]float64{1, 2}, rate); !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("rate %g: error = %v, want ErrInvalidSampleRate", rate, err)
		}
	}
	if _, err := Summarize(nil, 1); !errors.Is(err, ErrShortEvent) {
		t.Fatalf("empty error = %v, want ErrShortEvent", err)
	}
}

func TestSummarize_SingleSample(t *testing.T) {
	sum, err := Summarize([]float64{-3}, 1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if sum.ECD != 0 || sum.FFAP != 0 || sum.Skew != 0 || sum.Mean != -3 {
		t.Fatalf("sum = %+v", sum)
	}
}
