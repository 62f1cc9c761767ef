package smooth

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrInvalidSigma is returned for negative or non-finite sigma.
var ErrInvalidSigma = errors.New("smooth: sigma must be finite and >= 0")

const (
	// truncate is the kernel half-width in standard deviations.
	truncate = 4.0

	// directThreshold is the kernel length from which FFT convolution is used.
	directThreshold = 64
)

// Gaussian returns x smoothed by a Gaussian kernel with standard deviation
// sigma samples. sigma == 0 returns a copy of x.
func Gaussian(x []float64, sigma float64) ([]float64, error) {
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}

	out := make([]float64, len(x))
	if len(x) == 0 {
		return out, nil
	}

	kernel := Kernel(sigma)
	if len(kernel) == 1 {
		copy(out, x)
		return out, nil
	}

	radius := len(kernel) / 2
	padded := reflectPad(x, radius)

	if len(kernel) < directThreshold {
		directValid(out, padded, kernel)
		return out, nil
	}

	if err := fftValid(out, padded, kernel); err != nil {
		return nil, err
	}
	return out, nil
}

// Kernel returns the normalized Gaussian taps for sigma, of length
// 2*radius+1 with radius = int(4*sigma + 0.5).
func Kernel(sigma float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	if sigma <= 0 || radius < 1 {
		return []float64{1}
	}

	kernel := make([]float64, 2*radius+1)
	inv := 1 / (sigma * sigma)
	sum := 0.0
	for k := -radius; k <= radius; k++ {
		w := gaussTap(-0.5 * float64(k*k) * inv)
		kernel[k+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}

// reflectPad extends x by radius samples on each side with half-sample
// symmetric reflection. Radii longer than x reflect repeatedly.
func reflectPad(x []float64, radius int) []float64 {
	n := len(x)
	out := make([]float64, n+2*radius)
	for i := range out {
		out[i] = x[reflectIndex(i-radius, n)]
	}
	return out
}

// reflectIndex maps any integer onto [0, n) by symmetric reflection with
// period 2n.
func reflectIndex(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// directValid writes the valid part of the convolution of padded with the
// symmetric kernel into dst.
func directValid(dst, padded, kernel []float64) {
	for i := range dst {
		acc := 0.0
		window := padded[i : i+len(kernel)]
		for k, w := range kernel {
			acc += w * window[k]
		}
		dst[i] = acc
	}
}

// fftValid computes the same result as directValid using a single FFT
// linear convolution.
func fftValid(dst, padded, kernel []float64) error {
	fullLen := len(padded) + len(kernel) - 1
	fftSize := nextPowerOf2(fullLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return fmt.Errorf("smooth: failed to create FFT plan: %w", err)
	}

	signalBuf := make([]complex128, fftSize)
	kernelBuf := make([]complex128, fftSize)
	for i, v := range padded {
		signalBuf[i] = complex(v, 0)
	}
	for i, v := range kernel {
		kernelBuf[i] = complex(v, 0)
	}

	if err := plan.Forward(signalBuf, signalBuf); err != nil {
		return fmt.Errorf("smooth: forward FFT failed: %w", err)
	}
	if err := plan.Forward(kernelBuf, kernelBuf); err != nil {
		return fmt.Errorf("smooth: forward FFT failed: %w", err)
	}

	for i := range signalBuf {
		signalBuf[i] *= kernelBuf[i]
	}

	if err := plan.Inverse(signalBuf, signalBuf); err != nil {
		return fmt.Errorf("smooth: inverse FFT failed: %w", err)
	}

	offset := len(kernel) - 1
	for i := range dst {
		dst[i] = real(signalBuf[i+offset])
	}

	return nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
