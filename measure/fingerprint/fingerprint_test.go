package fingerprint

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var barcode = []float64{29.0 / 190, 43.0 / 190, 62.0 / 190, 84.0 / 190, 106.0 / 190, 128.0 / 190, 158.0 / 190}

func TestFingerprint(t *testing.T) {
	got := Fingerprint([]float64{1, 3, 6})
	want := [][]float64{
		{0, -2, -5},
		{2, 0, -3},
		{5, 3, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Fingerprint() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_ShiftedSubset(t *testing.T) {
	observed := []float64{barcode[1] + 0.05, barcode[3] + 0.05, barcode[4] + 0.05}

	a, err := Match(barcode, observed)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 3, 4}, a.Ideal); diff != "" {
		t.Fatalf("Ideal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, a.Observed); diff != "" {
		t.Fatalf("Observed mismatch (-want +got):\n%s", diff)
	}
	if a.Sign != 1 || a.Loss > 1e-12 {
		t.Fatalf("Sign = %d, Loss = %g", a.Sign, a.Loss)
	}
}

func TestMatch_Mirrored(t *testing.T) {
	observed := []float64{1 - barcode[1], 1 - barcode[3], 1 - barcode[4]}

	a, err := Match(barcode, observed)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if a.Sign != -1 || a.Loss > 1e-12 {
		t.Fatalf("Sign = %d, Loss = %g", a.Sign, a.Loss)
	}
	if diff := cmp.Diff([]int{1, 3, 4}, a.Ideal); diff != "" {
		t.Fatalf("Ideal mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_ExtraObservedPeaks(t *testing.T) {
	ideal := []float64{0, 10}
	observed := []float64{3, 5, 15}

	a, err := Match(ideal, observed)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if diff := cmp.Diff([]int{-1, 0, 1}, a.Labels(len(observed))); diff != "" {
		t.Fatalf("Labels mismatch (-want +got):\n%s", diff)
	}
	if a.Loss > 1e-12 {
		t.Fatalf("Loss = %g, want 0", a.Loss)
	}
}

func TestMatch_Errors(t *testing.T) {
	if _, err := Match(nil, []float64{1}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty ideal error = %v", err)
	}
	if _, err := Match([]float64{1}, nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty observed error = %v", err)
	}

	many := make([]float64, 12)
	for i := range many {
		many[i] = float64(i)
	}
	if _, err := Match(many, many); !errors.Is(err, ErrTooManyPeaks) {
		t.Fatalf("large search error = %v, want ErrTooManyPeaks", err)
	}
}

func TestCombinations(t *testing.T) {
	got := combinations(4, 2)
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("combinations mismatch (-want +got):\n%s", diff)
	}
}

func TestPermute(t *testing.T) {
	var got [][]int
	permute([]int{4, 7, 9}, func(p []int) {
		got = append(got, append([]int(nil), p...))
	})
	want := [][]int{{4, 7, 9}, {4, 9, 7}, {7, 4, 9}, {7, 9, 4}, {9, 4, 7}, {9, 7, 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("permute mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchSize(t *testing.T) {
	// C(7,3) * C(3,3) * 3! * 2
	if got := searchSize(7, 3, 3); got != 35*6*2 {
		t.Fatalf("searchSize = %g, want %d", got, 35*6*2)
	}
}
