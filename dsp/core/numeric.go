package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampIndex limits idx to the valid index range of a sequence of length n.
// Returns 0 for n <= 0.
func ClampIndex(idx, n int) int {
	if n <= 0 || idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// MinMax returns the smallest and largest value of x together with their
// first positions. For an empty slice both positions are -1.
func MinMax(x []float64) (minVal float64, minPos int, maxVal float64, maxPos int) {
	if len(x) == 0 {
		return 0, -1, 0, -1
	}

	minVal, maxVal = x[0], x[0]
	for i, v := range x[1:] {
		if v < minVal {
			minVal = v
			minPos = i + 1
		}
		if v > maxVal {
			maxVal = v
			maxPos = i + 1
		}
	}

	return minVal, minPos, maxVal, maxPos
}

// Trapz integrates x with the trapezoidal rule at unit spacing.
// Slices shorter than two samples have zero area.
func Trapz(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	sum := 0.5 * (x[0] + x[len(x)-1])
	for _, v := range x[1 : len(x)-1] {
		sum += v
	}

	return sum
}

// TrapzPadded integrates x with the trapezoidal rule after extending it with
// one zero sample on each side selected by padLeft and padRight. This treats
// x as a density that falls to zero outside its support, so an edge sample
// contributes its full value instead of half of it.
func TrapzPadded(x []float64, padLeft, padRight bool) float64 {
	if len(x) == 0 {
		return 0
	}

	area := Trapz(x)
	if padLeft {
		area += 0.5 * x[0]
	}
	if padRight {
		area += 0.5 * x[len(x)-1]
	}

	return area
}
