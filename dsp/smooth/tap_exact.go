//go:build !fastmath

package smooth

import "math"

// gaussTap evaluates exp(x) for kernel construction.
func gaussTap(x float64) float64 {
	return math.Exp(x)
}
