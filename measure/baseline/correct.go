package baseline

import (
	"errors"
	"fmt"

	"github.com/maxearle/nas2/dsp/fit"
	"github.com/maxearle/nas2/dsp/rle"
	timestats "github.com/maxearle/nas2/stats/time"
)

// ErrInsufficientBaselineSamples is returned when fewer than two samples
// fall in the baseline range, leaving the drift line underdetermined.
var ErrInsufficientBaselineSamples = errors.New("baseline: fewer than 2 samples in baseline range")

// Estimate describes the baseline of one trace.
type Estimate struct {
	// Low and High bound the baseline value range.
	Low  float64
	High float64
	// Mean and Noise are the mean and population standard deviation of the
	// raw samples inside the range.
	Mean  float64
	Noise float64
	// Drift is the line fitted through the baseline samples and removed
	// from the trace.
	Drift fit.Line
	// Samples is the number of samples inside the range.
	Samples int
	// Candidate is the histogram mode the baseline was taken from.
	Candidate Candidate
}

// Correct estimates the baseline of trace and returns the trace with the
// fitted baseline line subtracted. The input is not modified.
func Correct(trace []float64, opts ...Option) ([]float64, Estimate, error) {
	cfg := applyTo(DefaultCorrectorConfig(), opts)

	candidates, err := mostPersistent(trace, cfg)
	if err != nil {
		return nil, Estimate{}, err
	}

	best := candidates[Longest(candidates)]
	mask := rle.Mask(trace, best.Low, best.High)

	line, used, err := fit.Masked(trace, mask)
	if err != nil {
		if errors.Is(err, fit.ErrInsufficientPoints) {
			return nil, Estimate{}, fmt.Errorf("%w: %d in [%g, %g]", ErrInsufficientBaselineSamples, used, best.Low, best.High)
		}
		return nil, Estimate{}, fmt.Errorf("baseline: %w", err)
	}

	st := timestats.Masked(trace, mask)
	est := Estimate{
		Low:       best.Low,
		High:      best.High,
		Mean:      st.Mean,
		Noise:     st.Std,
		Drift:     line,
		Samples:   used,
		Candidate: best,
	}

	return line.Detrend(trace), est, nil
}
