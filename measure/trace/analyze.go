package trace

import (
	"fmt"

	"github.com/maxearle/nas2/measure/baseline"
	"github.com/maxearle/nas2/measure/event"
	"github.com/maxearle/nas2/measure/subpeak"
)

// Event is one detected event and its measurements.
type Event struct {
	// Window is the event in trace indices and Padded the window widened by
	// the berth.
	Window event.Window
	Padded event.Window
	// Summary holds the event attributes, computed on the re-levelled
	// samples of Window.
	Summary event.Summary
	// Peaks are the plateau dips. Their indices are relative to
	// Window.Start.
	Peaks []subpeak.Record
}

// Result is the analysis of one trace.
type Result struct {
	// Corrected is the trace with the baseline drift removed.
	Corrected []float64
	Baseline  baseline.Estimate
	// Threshold is the event threshold that was applied to Corrected.
	Threshold float64
	Events    []Event
}

// Analyze runs the per-trace pipeline on samples. The input is not
// modified.
func Analyze(samples []float64, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)

	corrected, est, err := baseline.Correct(samples,
		baseline.WithBins(cfg.Bins),
		baseline.WithSmoothing(cfg.Sigma),
		baseline.WithAreaThreshold(cfg.AreaThreshold),
		baseline.WithStrikes(cfg.BaselineStrikes),
	)
	if err != nil {
		return Result{}, fmt.Errorf("trace: %w", err)
	}

	res := Result{
		Corrected: corrected,
		Baseline:  est,
		Threshold: cfg.EventThreshold(est.Noise),
	}

	windows := event.Detect(corrected, res.Threshold, cfg.GapTolerance)
	for i, w := range windows {
		ev, err := analyzeEvent(corrected, w, cfg)
		if err != nil {
			return Result{}, fmt.Errorf("trace: event %d [%d, %d]: %w", i, w.Start, w.End, err)
		}
		res.Events = append(res.Events, ev)
	}

	return res, nil
}

func analyzeEvent(corrected []float64, w event.Window, cfg Config) (Event, error) {
	padded, samples := event.Extract(corrected, w, cfg.Berth)

	left, right := event.Edges(w, padded, cfg.Berth)
	fixed, err := event.FixBaseline(samples, left, right)
	if err != nil {
		return Event{}, err
	}

	plateau := fixed[w.Start-padded.Start : w.End-padded.Start+1]

	sum, err := event.Summarize(plateau, cfg.SampleRate)
	if err != nil {
		return Event{}, err
	}

	peaks, err := subpeak.Characterize(plateau,
		subpeak.WithStrikes(cfg.Strikes),
		subpeak.WithSmoothing(cfg.PlateauSigma),
	)
	if err != nil {
		return Event{}, err
	}

	return Event{
		Window:  w,
		Padded:  padded,
		Summary: sum,
		Peaks:   peaks,
	}, nil
}
