// Package peakmodel provides the expected shapes of a mass peak used to tell
// genuine peaks from lateral (shoulder) artifacts and baseline clutter.
//
// A model instance is bound to one (center m/z, intensity, resolution) triple.
// Every shape derives its full width at half maximum from the resolution:
//
//	FWHM = centerMZ / resolution
package peakmodel

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// Errors returned by model lookup and construction.
var (
	ErrUnknownModel      = errors.New("peakmodel: unknown peak model")
	ErrInvalidParameters = errors.New("peakmodel: invalid model parameters")
)

// PeakModel is the expected profile of a peak.
//
// BasePeakWidth returns a closed m/z interval containing the center; within
// it IntensityAt does not increase with distance from the center.
type PeakModel interface {
	BasePeakWidth() core.Range
	IntensityAt(mz float64) float64
}

// Factory builds a model centered at mz with the given apex intensity.
type Factory func(mz, intensity float64, resolution int) (PeakModel, error)

// Name identifies a shape family.
type Name string

const (
	Gaussian   Name = "Gaussian"
	Triangle   Name = "Triangle"
	Lorentzian Name = "Lorentzian"
)

var registry = map[Name]Factory{
	Gaussian:   NewGauss,
	Triangle:   NewTriangle,
	Lorentzian: NewLorentzian,
}

// Names returns the registered model names in sorted order.
func Names() []Name {
	names := make([]Name, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Lookup resolves a model name, ignoring case and surrounding space.
func Lookup(name string) (Factory, error) {
	want := strings.TrimSpace(name)
	for n, f := range registry {
		if strings.EqualFold(string(n), want) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// fwhm validates the shared constructor arguments and returns the full width
// at half maximum.
func fwhm(mz, intensity float64, resolution int) (float64, error) {
	if resolution <= 0 {
		return 0, fmt.Errorf("%w: resolution must be > 0: %d", ErrInvalidParameters, resolution)
	}
	if math.IsNaN(mz) || math.IsInf(mz, 0) || mz <= 0 {
		return 0, fmt.Errorf("%w: m/z must be finite and positive: %v", ErrInvalidParameters, mz)
	}
	if math.IsNaN(intensity) || math.IsInf(intensity, 0) || intensity < 0 {
		return 0, fmt.Errorf("%w: intensity must be finite and non-negative: %v", ErrInvalidParameters, intensity)
	}
	return mz / float64(resolution), nil
}
