package trace

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maxearle/nas2/dsp/hist"
	"github.com/maxearle/nas2/internal/testutil"
	"github.com/maxearle/nas2/measure/event"
)

// driftingTrace has a baseline at 10 drifting up by 0.2 and two events
// down to 6. The second event holds a triangular dip of depth 1 centred at
// 9230.
func driftingTrace() []float64 {
	const n = 20000
	trace := testutil.Add(
		testutil.DipTrace(10, n,
			testutil.Dip{Start: 3000, End: 3400, Level: 6},
			testutil.Dip{Start: 9000, End: 9500, Level: 6},
		),
		testutil.Ramp(0, 0.2/n, n),
		testutil.GaussianNoise(7, 0.05, n),
	)
	for i := 9200; i <= 9260; i++ {
		trace[i] -= float64(30-abs(i-9230)) / 30
	}
	return trace
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestAnalyze_Pipeline(t *testing.T) {
	samples := driftingTrace()
	orig := append([]float64(nil), samples...)

	res, err := Analyze(samples,
		WithBerth(50),
		WithPlateauSmoothing(5),
		WithSampleRate(1000),
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, samples, orig, 0)

	// The noise is measured before the drift is removed.
	if res.Baseline.Noise < 0.05 || res.Baseline.Noise > 0.1 {
		t.Errorf("baseline noise = %g, want in [0.05, 0.1]", res.Baseline.Noise)
	}
	if res.Threshold >= 0 {
		t.Errorf("threshold = %g, want negative", res.Threshold)
	}

	var windows []event.Window
	for _, ev := range res.Events {
		windows = append(windows, ev.Window)
	}
	want := []event.Window{{Start: 3000, End: 3399}, {Start: 9000, End: 9499}}
	if diff := cmp.Diff(want, windows); diff != "" {
		t.Fatalf("windows mismatch (-want +got):\n%s", diff)
	}

	first := res.Events[0]
	if first.Padded != (event.Window{Start: 2950, End: 3449}) {
		t.Errorf("padded = %+v", first.Padded)
	}
	if first.Summary.Samples != 400 {
		t.Errorf("samples = %d, want 400", first.Summary.Samples)
	}
	testutil.RequireNearlyEqual(t, "duration", first.Summary.Duration, 0.4, 1e-12)
	if math.Abs(first.Summary.Mean+4) > 0.05 {
		t.Errorf("event mean = %g, want ~-4", first.Summary.Mean)
	}

	found := false
	for _, p := range res.Events[1].Peaks {
		if p.Start < 230 && p.End > 230 && p.Depth < -0.8 {
			found = true
		}
	}
	if !found {
		t.Fatalf("sub-dip at 230 not characterized: %+v", res.Events[1].Peaks)
	}
}

func TestAnalyze_NoEvents(t *testing.T) {
	samples := testutil.Add(testutil.DC(3, 5000), testutil.GaussianNoise(2, 0.1, 5000))

	res, err := Analyze(samples, WithThreshold(-2))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(res.Events) != 0 {
		t.Fatalf("got %d events, want none", len(res.Events))
	}
	if res.Threshold != -2 {
		t.Fatalf("threshold = %g, want -2", res.Threshold)
	}
	if len(res.Corrected) != len(samples) {
		t.Fatalf("corrected length %d, want %d", len(res.Corrected), len(samples))
	}
}

func TestAnalyze_Errors(t *testing.T) {
	if _, err := Analyze(testutil.DC(1, 100)); !errors.Is(err, hist.ErrDegenerateRange) {
		t.Fatalf("constant trace error = %v, want ErrDegenerateRange", err)
	}
}

func TestAnalyze_EdgeEvents(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		dip    testutil.Dip
		berth  int
		window event.Window
		padded event.Window
	}{
		{
			name:   "touching last sample",
			n:      2000,
			dip:    testutil.Dip{Start: 1900, End: 2000, Level: -1},
			berth:  200,
			window: event.Window{Start: 1900, End: 1999},
			padded: event.Window{Start: 1700, End: 1999},
		},
		{
			name:   "touching first sample",
			n:      2000,
			dip:    testutil.Dip{Start: 0, End: 100, Level: -1},
			berth:  200,
			window: event.Window{Start: 0, End: 99},
			padded: event.Window{Start: 0, End: 299},
		},
		{
			name:   "mid trace",
			n:      2000,
			dip:    testutil.Dip{Start: 900, End: 1000, Level: -1},
			berth:  200,
			window: event.Window{Start: 900, End: 999},
			padded: event.Window{Start: 700, End: 1199},
		},
		{
			name:   "berth beyond trace",
			n:      300,
			dip:    testutil.Dip{Start: 10, End: 15, Level: -1},
			berth:  400,
			window: event.Window{Start: 10, End: 14},
			padded: event.Window{Start: 0, End: 299},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := testutil.Add(
				testutil.DipTrace(0, tt.n, tt.dip),
				testutil.GaussianNoise(11, 0.01, tt.n),
			)

			res, err := Analyze(samples, WithBerth(tt.berth), WithThreshold(-0.5))
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if len(res.Events) != 1 {
				t.Fatalf("got %d events, want 1", len(res.Events))
			}
			ev := res.Events[0]
			if ev.Window != tt.window || ev.Padded != tt.padded {
				t.Fatalf("window %+v padded %+v, want %+v %+v", ev.Window, ev.Padded, tt.window, tt.padded)
			}
			if math.Abs(ev.Summary.Mean+1) > 0.02 {
				t.Errorf("event mean = %g, want ~-1", ev.Summary.Mean)
			}
		})
	}

	// Without noise the re-levelling must be exact even when the berth
	// covers the whole trace.
	short := testutil.DipTrace(10, 100, testutil.Dip{Start: 40, End: 60, Level: 5})
	res, err := Analyze(short, WithThreshold(-1), WithBerth(500))
	if err != nil {
		t.Fatalf("berth longer than trace error = %v", err)
	}
	if len(res.Events) != 1 || res.Events[0].Padded != (event.Window{Start: 0, End: 99}) {
		t.Fatalf("events = %+v, want one padded to the whole trace", res.Events)
	}
	testutil.RequireNearlyEqual(t, "mean", res.Events[0].Summary.Mean, -5, 1e-6)
}

func TestOptions(t *testing.T) {
	cfg := ApplyOptions(
		WithBins(80),
		WithSmoothing(2),
		WithAreaThreshold(0.1),
		WithBaselineStrikes(2),
		WithThreshold(-0.3),
		WithGapTolerance(10),
		WithBerth(20),
		WithStrikes(3),
		WithPlateauSmoothing(4),
		WithSampleRate(250e3),
	)
	want := Config{
		AreaThreshold:     0.1,
		BaselineStrikes:   2,
		Threshold:         -0.3,
		AbsoluteThreshold: true,
		ThresholdSigma:    5,
		GapTolerance:      10,
		Berth:             20,
		Strikes:           3,
		PlateauSigma:      4,
		SampleRate:        250e3,
	}
	want.Bins = 80
	want.Sigma = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.EventThreshold(1) != -0.3 {
		t.Fatalf("absolute threshold ignored")
	}

	cfg = ApplyOptions(WithThreshold(-0.3), WithThresholdSigma(3))
	if cfg.AbsoluteThreshold {
		t.Fatal("WithThresholdSigma must clear the absolute threshold")
	}
	testutil.RequireNearlyEqual(t, "sigma threshold", cfg.EventThreshold(0.1), -0.3, 1e-12)

	cfg = ApplyOptions(
		WithGapTolerance(-1),
		WithBerth(-1),
		WithStrikes(0),
		WithBaselineStrikes(0),
		WithThreshold(math.NaN()),
		WithThresholdSigma(0),
		WithSampleRate(0),
		WithPlateauSmoothing(-1),
		WithAreaThreshold(2),
	)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("invalid options changed config (-want +got):\n%s", diff)
	}
}
