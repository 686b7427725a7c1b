// Package exactmass centroids raw profile scans into exact masses.
//
// Detection runs in two steps. The intensity profile is first cut into runs
// of positive intensity, each run is split at its local minima, and every
// part whose local maximum clears the noise level becomes a peak whose m/z is
// the intensity-weighted mean of its samples:
//
//	mz = sum(mz_i * I_i) / sum(I_i)
//
// Optionally a second pass then compares each peak against a peak-shape model
// (see package peakmodel) and discards shoulders and baseline clutter.
//
// A Detector holds only its configuration, so one value can serve many scans
// from concurrent goroutines.
package exactmass

import (
	"errors"
	"fmt"

	"github.com/inambioinfo/mzmine2/pkg/core"
	"github.com/inambioinfo/mzmine2/pkg/peakmodel"
)

// ErrPeakModel reports that the lateral pass could not build a peak model.
// The peaks returned alongside it are valid but not lateral-cleaned.
var ErrPeakModel = errors.New("exactmass: peak model unavailable")

// Config holds the mass detection parameters.
type Config struct {
	NoiseLevel   float64 // peaks whose maximum is not above this are dropped
	Resolution   int     // passed to the peak model
	CleanLateral bool    // run the lateral peak suppression pass
	PeakModel    peakmodel.Name

	// PeakModelFactory overrides the PeakModel name lookup when set.
	PeakModelFactory peakmodel.Factory
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default detection parameters.
func DefaultConfig() Config {
	return Config{
		NoiseLevel:   0,
		Resolution:   60000,
		CleanLateral: false,
		PeakModel:    peakmodel.Gaussian,
	}
}

// WithNoiseLevel sets the noise level. Negative values are ignored.
func WithNoiseLevel(level float64) Option {
	return func(cfg *Config) {
		if level >= 0 {
			cfg.NoiseLevel = level
		}
	}
}

// WithResolution sets the peak model resolution. Non-positive values are ignored.
func WithResolution(resolution int) Option {
	return func(cfg *Config) {
		if resolution > 0 {
			cfg.Resolution = resolution
		}
	}
}

// WithCleanLateral enables or disables lateral peak suppression.
func WithCleanLateral(enabled bool) Option {
	return func(cfg *Config) {
		cfg.CleanLateral = enabled
	}
}

// WithPeakModel selects the peak model by name. The name is resolved when a
// scan is processed, so an unknown name surfaces as ErrPeakModel.
func WithPeakModel(name peakmodel.Name) Option {
	return func(cfg *Config) {
		cfg.PeakModel = name
	}
}

// WithPeakModelFactory supplies a peak model constructor directly.
func WithPeakModelFactory(f peakmodel.Factory) Option {
	return func(cfg *Config) {
		cfg.PeakModelFactory = f
	}
}

// Detector finds exact masses in profile scans.
type Detector struct {
	cfg Config
}

// NewDetector returns a detector using DefaultConfig modified by opts.
func NewDetector(opts ...Option) *Detector {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Detector{cfg: cfg}
}

// NewDetectorFromConfig returns a detector using cfg as is.
func NewDetectorFromConfig(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// DetectMasses returns the peaks of scan in ascending m/z order.
//
// The scan is only read. Peaks own copies of their support points. An empty
// or all-zero scan yields no peaks and no error. A non-nil error always wraps
// ErrPeakModel, and the returned peaks are then those left when the lateral
// pass stopped.
func (d *Detector) DetectMasses(scan *core.Scan) ([]core.Peak, error) {
	if scan == nil || len(scan.Points) == 0 {
		return nil, nil
	}

	prof := newProfile(scan.Points)

	var peaks []core.Peak
	for _, r := range segment(prof.intensities) {
		peaks = append(peaks, prof.centroids(r, d.cfg.NoiseLevel)...)
	}

	if !d.cfg.CleanLateral || len(peaks) == 0 {
		return peaks, nil
	}

	factory, err := d.factory()
	if err != nil {
		return peaks, err
	}

	return removeLateralPeaks(peaks, lateralParams{
		basePeak:   scan.BasePeakIntensity,
		noiseLevel: d.cfg.NoiseLevel,
		resolution: d.cfg.Resolution,
		factory:    factory,
	})
}

func (d *Detector) factory() (peakmodel.Factory, error) {
	if d.cfg.PeakModelFactory != nil {
		return d.cfg.PeakModelFactory, nil
	}
	f, err := peakmodel.Lookup(string(d.cfg.PeakModel))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPeakModel, err)
	}
	return f, nil
}
