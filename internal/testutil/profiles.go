// Package testutil builds deterministic profile scans and float assertions
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// ScanFromIntensities builds a scan with evenly spaced m/z values starting at
// startMZ. The base peak is computed from the intensities.
func ScanFromIntensities(startMZ, step float64, intensities []float64) *core.Scan {
	points := make([]core.DataPoint, len(intensities))
	for i, v := range intensities {
		points[i] = core.DataPoint{MZ: startMZ + float64(i)*step, Intensity: v}
	}
	scan := &core.Scan{Number: 1, MSLevel: 1, Points: points}
	scan.UpdateBasePeak()
	return scan
}

// GaussianProfile adds a sampled Gaussian of the given height and FWHM to
// intensities, whose m/z grid is startMZ + i*step. Samples further than
// 4 sigma from center stay untouched.
func GaussianProfile(intensities []float64, startMZ, step, center, fwhm, height float64) {
	sigma := fwhm / 2.354820045
	for i := range intensities {
		d := startMZ + float64(i)*step - center
		if math.Abs(d) > 4*sigma {
			continue
		}
		intensities[i] += height * math.Exp(-d*d/(2*sigma*sigma))
	}
}

// DeterministicNoise adds uniform noise in [0, amplitude) to every non-zero
// sample, with a fixed seed for reproducibility.
func DeterministicNoise(intensities []float64, seed int64, amplitude float64) {
	rng := rand.New(rand.NewSource(seed))
	for i, v := range intensities {
		if v > 0 {
			intensities[i] = v + rng.Float64()*amplitude
		}
	}
}
