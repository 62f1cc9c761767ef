package testutil

import (
	"math/rand"
)

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// GaussianNoise generates normally distributed noise with standard deviation
// std and a fixed seed.
func GaussianNoise(seed int64, std float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * std
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates intercept + slope*i for i in [0, length).
func Ramp(intercept, slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = intercept + slope*float64(i)
	}
	return out
}

// Bimodal returns na samples at level a followed by nb samples at level b.
func Bimodal(a, b float64, na, nb int) []float64 {
	out := make([]float64, 0, na+nb)
	out = append(out, DC(a, na)...)
	out = append(out, DC(b, nb)...)
	return out
}

// Dip is a rectangular departure from the baseline covering samples
// [Start, End) at Level.
type Dip struct {
	Start int
	End   int
	Level float64
}

// DipTrace generates a trace at baseline level with rectangular dips.
// Dip ranges are clipped to the trace.
func DipTrace(baseline float64, length int, dips ...Dip) []float64 {
	out := DC(baseline, length)
	for _, d := range dips {
		start := max(d.Start, 0)
		end := min(d.End, length)
		for i := start; i < end; i++ {
			out[i] = d.Level
		}
	}
	return out
}

// TriangleDip generates a flat signal at level with a symmetric V-shaped dip
// of the given depth centred at center and spanning halfWidth samples on
// each side.
func TriangleDip(level, depth float64, length, center, halfWidth int) []float64 {
	out := DC(level, length)
	for i := center - halfWidth; i <= center+halfWidth; i++ {
		if i < 0 || i >= length {
			continue
		}
		d := i - center
		if d < 0 {
			d = -d
		}
		out[i] = level - depth*float64(halfWidth-d)/float64(halfWidth)
	}
	return out
}

// Add returns the element-wise sum of signals, truncated to the shortest.
func Add(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	n := len(signals[0])
	for _, s := range signals[1:] {
		n = min(n, len(s))
	}
	out := make([]float64, n)
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}

// Negate returns -x.
func Negate(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = -v
	}
	return out
}
