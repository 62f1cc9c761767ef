// Package fit provides least-squares fitting of straight lines.
package fit

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the fitting functions.
var (
	ErrLengthMismatch     = errors.New("fit: x and y must have the same length")
	ErrInsufficientPoints = errors.New("fit: at least two points are required")
	ErrSingular           = errors.New("fit: x values are all equal")
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Detrend returns y[i] - l.At(i) for every index i of y.
func (l Line) Detrend(y []float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v - l.At(float64(i))
	}
	return out
}

// LeastSquares fits a line to the points (x[i], y[i]) by ordinary least
// squares. The sums are formed about the means of x and y to avoid the
// cancellation of the textbook normal equations on long index ranges.
func LeastSquares(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return Line{}, fmt.Errorf("%w: got %d", ErrInsufficientPoints, n)
	}

	meanX, meanY := mean(x), mean(y)
	dx := make([]float64, n)
	dy := make([]float64, n)
	for i := range x {
		dx[i] = x[i] - meanX
		dy[i] = y[i] - meanY
	}

	prod := make([]float64, n)
	vecmath.MulBlock(prod, dx, dx)
	sxx := sum(prod)
	if sxx == 0 {
		return Line{}, ErrSingular
	}

	vecmath.MulBlock(prod, dx, dy)
	sxy := sum(prod)

	slope := sxy / sxx
	return Line{Slope: slope, Intercept: meanY - slope*meanX}, nil
}

// Masked fits a line to the samples y[i] with mask[i] set, using the sample
// index as x. It also returns the number of samples used.
func Masked(y []float64, mask []bool) (Line, int, error) {
	if len(y) != len(mask) {
		return Line{}, 0, fmt.Errorf("%w: %d samples, %d mask entries", ErrLengthMismatch, len(y), len(mask))
	}

	xs := make([]float64, 0, len(y))
	ys := make([]float64, 0, len(y))
	for i, keep := range mask {
		if keep {
			xs = append(xs, float64(i))
			ys = append(ys, y[i])
		}
	}

	line, err := LeastSquares(xs, ys)
	return line, len(xs), err
}

func sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s
}

func mean(x []float64) float64 {
	return sum(x) / float64(len(x))
}
