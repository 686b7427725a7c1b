package peakmodel

import (
	"math"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// fwhmToSigma converts a Gaussian FWHM into its standard deviation.
const fwhmToSigma = 1 / 2.354820045

// Gauss is a Gaussian peak. Its base width ends where the curve falls to an
// intensity of 1.
type Gauss struct {
	mz        float64
	intensity float64
	twoSigma2 float64
}

// NewGauss returns a Gaussian model.
func NewGauss(mz, intensity float64, resolution int) (PeakModel, error) {
	w, err := fwhm(mz, intensity, resolution)
	if err != nil {
		return nil, err
	}
	sigma := w * fwhmToSigma
	return &Gauss{mz: mz, intensity: intensity, twoSigma2: 2 * sigma * sigma}, nil
}

// BasePeakWidth returns the interval where the model is above intensity 1.
func (g *Gauss) BasePeakWidth() core.Range {
	side := baselineSide(g.intensity, func(ln float64) float64 {
		return math.Sqrt(g.twoSigma2 * ln)
	})
	return core.Range{Min: g.mz - side, Max: g.mz + side}
}

// IntensityAt returns the expected intensity at mz.
func (g *Gauss) IntensityAt(mz float64) float64 {
	d := mz - g.mz
	return g.intensity * math.Exp(-d*d/g.twoSigma2)
}

// Tri is a symmetric triangular peak whose base is twice its FWHM.
type Tri struct {
	mz        float64
	intensity float64
	half      float64 // half of the base, equal to the FWHM
}

// NewTriangle returns a triangular model.
func NewTriangle(mz, intensity float64, resolution int) (PeakModel, error) {
	w, err := fwhm(mz, intensity, resolution)
	if err != nil {
		return nil, err
	}
	return &Tri{mz: mz, intensity: intensity, half: w}, nil
}

// BasePeakWidth returns the triangle base.
func (t *Tri) BasePeakWidth() core.Range {
	return core.Range{Min: t.mz - t.half, Max: t.mz + t.half}
}

// IntensityAt returns the expected intensity at mz, 0 outside the base.
func (t *Tri) IntensityAt(mz float64) float64 {
	d := math.Abs(mz - t.mz)
	if d >= t.half {
		return 0
	}
	return t.intensity * (1 - d/t.half)
}

// Lorentz is a Lorentzian (Cauchy) peak. Like Gauss, its base width ends
// where the curve falls to an intensity of 1.
type Lorentz struct {
	mz        float64
	intensity float64
	gamma2    float64
}

// NewLorentzian returns a Lorentzian model.
func NewLorentzian(mz, intensity float64, resolution int) (PeakModel, error) {
	w, err := fwhm(mz, intensity, resolution)
	if err != nil {
		return nil, err
	}
	gamma := w / 2
	return &Lorentz{mz: mz, intensity: intensity, gamma2: gamma * gamma}, nil
}

// BasePeakWidth returns the interval where the model is above intensity 1.
func (l *Lorentz) BasePeakWidth() core.Range {
	side := math.Sqrt(l.gamma2 * math.Abs(l.intensity-1))
	return core.Range{Min: l.mz - side, Max: l.mz + side}
}

// IntensityAt returns the expected intensity at mz.
func (l *Lorentz) IntensityAt(mz float64) float64 {
	d := mz - l.mz
	return l.intensity * l.gamma2 / (d*d + l.gamma2)
}

// baselineSide evaluates side(|ln(1/intensity)|). A zero intensity has no
// baseline crossing and collapses the width to the center.
func baselineSide(intensity float64, side func(ln float64) float64) float64 {
	if intensity <= 0 {
		return 0
	}
	return side(math.Abs(math.Log(1 / intensity)))
}
