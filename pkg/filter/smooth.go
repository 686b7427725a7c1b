package filter

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// residueFloor scales the largest input magnitude into the level below which
// smoothed samples are treated as FFT round-off and set to zero.
const residueFloor = 1e-12

// minFFTSize keeps very short scans off tiny transform sizes.
const minFFTSize = 64

// Smooth convolves x with a normalized Gaussian of the given sigma (in
// samples), truncated at 3 sigma, and returns a slice of the same length.
// Samples further than the kernel radius from any non-zero input stay zero.
func Smooth(x []float64, sigma float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, nil
	}
	if sigma <= 0 {
		return append([]float64(nil), x...), nil
	}

	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	// Full linear convolution fits in len(x) + len(kernel) - 1 samples.
	fftSize := nextPowerOf2(max(len(x)+len(kernel)-1, minFFTSize))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to create FFT plan: %w", err)
	}

	signal := make([]complex128, fftSize)
	for i, v := range x {
		signal[i] = complex(v, 0)
	}
	kernelPadded := make([]complex128, fftSize)
	for i, v := range kernel {
		kernelPadded[i] = complex(v, 0)
	}

	signalFFT := make([]complex128, fftSize)
	if err := plan.Forward(signalFFT, signal); err != nil {
		return nil, fmt.Errorf("filter: forward FFT failed: %w", err)
	}
	kernelFFT := make([]complex128, fftSize)
	if err := plan.Forward(kernelFFT, kernelPadded); err != nil {
		return nil, fmt.Errorf("filter: failed to compute kernel FFT: %w", err)
	}

	for i := range signalFFT {
		signalFFT[i] *= kernelFFT[i]
	}
	if err := plan.Inverse(signal, signalFFT); err != nil {
		return nil, fmt.Errorf("filter: inverse FFT failed: %w", err)
	}

	// Drop the kernel delay so the output lines up with x.
	floor := residueFloor * vecmath.MaxAbs(x)
	out := make([]float64, len(x))
	for i := range out {
		v := real(signal[i+radius])
		if v > floor {
			out[i] = v
		}
	}
	return out, nil
}

// gaussianKernel returns a unit-sum Gaussian of length 2*ceil(3*sigma)+1.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	twoSigma2 := 2 * sigma * sigma
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / twoSigma2)
	}
	vecmath.ScaleBlockInPlace(kernel, 1/vecmath.Sum(kernel))
	return kernel
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
