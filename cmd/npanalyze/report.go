package main

import (
	"errors"
	"fmt"

	"github.com/maxearle/nas2/measure/baseline"
	"github.com/maxearle/nas2/measure/fingerprint"
	"github.com/maxearle/nas2/measure/subpeak"
	"github.com/maxearle/nas2/measure/trace"
)

// extraPeaks is how many dips beyond the barcode length take part in the
// barcode assignment. The deepest dips are used.
const extraPeaks = 2

// TraceReport is the output record of one analyzed trace.
type TraceReport struct {
	File      string        `json:"file"`
	Samples   int           `json:"samples"`
	Baseline  BaselineLevel `json:"baseline"`
	Threshold float64       `json:"threshold"`
	Events    []EventReport `json:"events"`
}

// BaselineLevel describes the fitted baseline of a trace.
type BaselineLevel struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Mean      float64 `json:"mean"`
	Noise     float64 `json:"noise"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Samples   int     `json:"samples"`
}

// EventReport is one event of a trace. Indices are trace indices.
type EventReport struct {
	Index       int          `json:"index"`
	Start       int          `json:"start"`
	End         int          `json:"end"`
	PaddedStart int          `json:"padded_start"`
	PaddedEnd   int          `json:"padded_end"`
	Samples     int          `json:"samples"`
	DurationS   float64      `json:"duration_s"`
	ECD         float64      `json:"ecd"`
	Mean        float64      `json:"mean"`
	FFAP        float64      `json:"ffap"`
	LFAP        float64      `json:"lfap"`
	Skew        float64      `json:"skew"`
	BarcodeLoss *float64     `json:"barcode_loss,omitempty"`
	Peaks       []PeakReport `json:"peaks,omitempty"`
}

// PeakReport is one dip of an event plateau. Start and End are trace
// indices; Position is the dip centre as a fraction of the event length.
type PeakReport struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Width    int     `json:"width"`
	Position float64 `json:"position"`
	Area     float64 `json:"area"`
	Depth    float64 `json:"depth"`
	Offset   float64 `json:"offset"`
	Site     int     `json:"site"`
}

// BaselineReport is the output record of the baseline command.
type BaselineReport struct {
	File       string            `json:"file"`
	Baseline   BaselineLevel     `json:"baseline"`
	Candidates []CandidateReport `json:"candidates"`
}

// CandidateReport is one histogram mode of a trace.
type CandidateReport struct {
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Level    float64 `json:"level"`
	Area     float64 `json:"area"`
	Fraction float64 `json:"fraction"`
	MaxRun   int     `json:"max_run"`
	Chosen   bool    `json:"chosen"`
}

func baselineLevel(est baseline.Estimate) BaselineLevel {
	return BaselineLevel{
		Low:       est.Low,
		High:      est.High,
		Mean:      est.Mean,
		Noise:     est.Noise,
		Slope:     est.Drift.Slope,
		Intercept: est.Drift.Intercept,
		Samples:   est.Samples,
	}
}

// analyzeTrace runs the trace pipeline and builds its report, applying the
// sub-peak filter and the barcode assignment.
func analyzeTrace(path string, samples []float64, p Params) (TraceReport, error) {
	res, err := trace.Analyze(samples, p.TraceOptions()...)
	if err != nil {
		return TraceReport{}, err
	}

	rep := TraceReport{
		File:      path,
		Samples:   len(samples),
		Baseline:  baselineLevel(res.Baseline),
		Threshold: res.Threshold,
		Events:    make([]EventReport, 0, len(res.Events)),
	}

	for i, ev := range res.Events {
		er := EventReport{
			Index:       i,
			Start:       ev.Window.Start,
			End:         ev.Window.End,
			PaddedStart: ev.Padded.Start,
			PaddedEnd:   ev.Padded.End,
			Samples:     ev.Summary.Samples,
			DurationS:   ev.Summary.Duration,
			ECD:         ev.Summary.ECD,
			Mean:        ev.Summary.Mean,
			FFAP:        ev.Summary.FFAP,
			LFAP:        ev.Summary.LFAP,
			Skew:        ev.Summary.Skew,
		}

		peaks := subpeak.Filter(ev.Peaks, p.FilterOptions(ev.Summary.Mean)...)
		length := float64(ev.Window.Len())
		for _, pk := range peaks {
			er.Peaks = append(er.Peaks, PeakReport{
				Start:    ev.Window.Start + pk.Start,
				End:      ev.Window.Start + pk.End,
				Width:    pk.Width,
				Position: float64(pk.Start+pk.End) / 2 / length,
				Area:     pk.Area,
				Depth:    pk.Depth,
				Offset:   pk.Offset,
				Site:     -1,
			})
		}

		if len(p.Barcode) > 0 && len(er.Peaks) > 0 {
			if err := assignSites(&er, p.Barcode); err != nil {
				return TraceReport{}, fmt.Errorf("event %d: %w", i, err)
			}
		}
		rep.Events = append(rep.Events, er)
	}

	return rep, nil
}

// assignSites labels the deepest peaks of er with their barcode site.
func assignSites(er *EventReport, barcode []float64) error {
	n := min(len(er.Peaks), len(barcode)+extraPeaks)
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = er.Peaks[i].Position
	}

	a, err := fingerprint.Match(barcode, positions)
	if err != nil {
		return err
	}
	for i, site := range a.Labels(n) {
		er.Peaks[i].Site = site
	}
	er.BarcodeLoss = &a.Loss
	return nil
}

// baselineTrace lists the baseline candidates of a trace and marks the one
// the corrector picks.
func baselineTrace(path string, samples []float64, p Params) (BaselineReport, error) {
	opts := p.BaselineOptions()

	cands, err := baseline.MostPersistent(samples, opts...)
	if err != nil && !errors.Is(err, baseline.ErrNoSignificantPeak) {
		return BaselineReport{}, err
	}
	_, est, err := baseline.Correct(samples, opts...)
	if err != nil {
		return BaselineReport{}, err
	}

	rep := BaselineReport{
		File:       path,
		Baseline:   baselineLevel(est),
		Candidates: make([]CandidateReport, 0, len(cands)),
	}
	for _, c := range cands {
		rep.Candidates = append(rep.Candidates, CandidateReport{
			Low:      c.Low,
			High:     c.High,
			Level:    c.Level,
			Area:     c.Area,
			Fraction: c.Fraction,
			MaxRun:   c.MaxRun,
			Chosen:   c.LowBin == est.Candidate.LowBin && c.HighBin == est.Candidate.HighBin,
		})
	}
	return rep, nil
}
