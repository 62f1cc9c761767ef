package event

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/maxearle/nas2/dsp/core"
	timestats "github.com/maxearle/nas2/stats/time"
)

var (
	// ErrShortEvent is returned when an event holds too few samples for the
	// requested operation.
	ErrShortEvent = errors.New("event: too few samples")
	// ErrInvalidSampleRate is returned for a non-positive or non-finite
	// sample rate.
	ErrInvalidSampleRate = errors.New("event: invalid sample rate")
)

// Summary holds the per-event attributes.
type Summary struct {
	// Samples is the event length and Duration the same in seconds.
	Samples  int
	Duration float64
	// ECD is the event charge deficit: the trapezoidal area of the event
	// divided by the sample rate.
	ECD float64
	// Mean is the mean sample value.
	Mean float64
	// FFAP and LFAP are the shares of the area held by the first and last
	// fifth of the event.
	FFAP float64
	LFAP float64
	// Skew is the area weighted by a rising ramp over the area weighted by a
	// falling ramp. Above 1 the event is heavier towards its end.
	Skew float64
}

// Extract returns w widened by berth samples on each side and clamped to
// trace, together with a copy of the samples it covers.
func Extract(trace []float64, w Window, berth int) (Window, []float64) {
	if len(trace) == 0 {
		return Window{Start: 0, End: -1}, nil
	}
	padded := Pad(w, berth, len(trace))
	if padded.Start > padded.End {
		return padded, nil
	}
	out := make([]float64, padded.Len())
	copy(out, trace[padded.Start:padded.End+1])
	return padded, out
}

// FixBaseline re-levels an extracted event against its local baseline: the
// mean of the first left and the last right samples is subtracted from every
// sample. A negative count is treated as 0 and that side is skipped. With
// both counts 0 the samples are copied unchanged.
//
// The counts should not exceed the padding actually present around the
// event, so that no event sample is averaged into the baseline level.
func FixBaseline(samples []float64, left, right int) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrShortEvent
	}
	left, right = max(left, 0), max(right, 0)
	if left+right > len(samples) {
		return nil, fmt.Errorf("%w: %d samples cannot hold edges of %d and %d",
			ErrShortEvent, len(samples), left, right)
	}

	out := make([]float64, len(samples))
	copy(out, samples)
	if left+right == 0 {
		return out, nil
	}

	var sum float64
	for _, v := range samples[:left] {
		sum += v
	}
	for _, v := range samples[len(samples)-right:] {
		sum += v
	}
	level := sum / float64(left+right)
	for i := range out {
		out[i] -= level
	}
	return out, nil
}

// Edges returns how many baseline samples on each side of w can be used to
// re-level it: berth/2, limited to the padding that padded really holds
// after clamping to the trace.
func Edges(w, padded Window, berth int) (left, right int) {
	edge := max(berth/2, 0)
	left = min(edge, max(w.Start-padded.Start, 0))
	right = min(edge, max(padded.End-w.End, 0))
	return left, right
}

// Summarize computes the event attributes of samples taken at sampleRate
// samples per second. Ratios with a zero denominator are reported as 0.
func Summarize(samples []float64, sampleRate float64) (Summary, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return Summary{}, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}
	n := len(samples)
	if n == 0 {
		return Summary{}, ErrShortEvent
	}

	area := core.Trapz(samples)
	fifth := n / 5

	rising := make([]float64, n)
	falling := make([]float64, n)
	for i := range rising {
		if n > 1 {
			rising[i] = float64(i) / float64(n-1)
		}
		falling[i] = 1 - rising[i]
	}
	vecmath.MulBlockInPlace(rising, samples)
	vecmath.MulBlockInPlace(falling, samples)

	return Summary{
		Samples:  n,
		Duration: float64(n) / sampleRate,
		ECD:      area / sampleRate,
		Mean:     timestats.Mean(samples),
		FFAP:     ratio(core.Trapz(samples[:fifth]), area),
		LFAP:     ratio(core.Trapz(samples[n-fifth:]), area),
		Skew:     ratio(core.Trapz(rising), core.Trapz(falling)),
	}, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
