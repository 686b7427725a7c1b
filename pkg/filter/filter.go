// Package filter provides scan preprocessing ahead of mass detection and
// selection of detected peaks
package filter

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// ErrInvalidConfig is returned by Apply for out-of-range settings.
var ErrInvalidConfig = errors.New("filter: invalid configuration")

// Config holds preprocessing configuration
type Config struct {
	MinMZ           float64 // Drop points below this m/z (0 = no lower bound)
	MaxMZ           float64 // Drop points above this m/z (0 = no upper bound)
	IntensityCutoff float64 // Zero samples below this % of base peak (0 = no cutoff)
	SmoothingSigma  float64 // Gaussian smoothing width in samples (0 = off)
}

// Validate checks the configuration ranges.
func (c *Config) Validate() error {
	if c.MinMZ < 0 || c.MaxMZ < 0 {
		return fmt.Errorf("%w: m/z bounds must be >= 0", ErrInvalidConfig)
	}
	if c.MaxMZ > 0 && c.MinMZ > c.MaxMZ {
		return fmt.Errorf("%w: min m/z %g above max m/z %g", ErrInvalidConfig, c.MinMZ, c.MaxMZ)
	}
	if c.IntensityCutoff < 0 || c.IntensityCutoff > 100 {
		return fmt.Errorf("%w: intensity cutoff must be in [0,100]: %g", ErrInvalidConfig, c.IntensityCutoff)
	}
	if c.SmoothingSigma < 0 || math.IsNaN(c.SmoothingSigma) {
		return fmt.Errorf("%w: smoothing sigma must be >= 0: %g", ErrInvalidConfig, c.SmoothingSigma)
	}
	return nil
}

// Active reports whether Apply would change a scan.
func (c *Config) Active() bool {
	return c.MinMZ > 0 || c.MaxMZ > 0 || c.IntensityCutoff > 0 || c.SmoothingSigma > 0
}

// Apply crops, smooths and gates the scan in place, in that order, then
// recomputes its base peak. Zeroed samples are kept so the profile stays
// contiguous.
func (c *Config) Apply(scan *core.Scan) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.MinMZ > 0 || c.MaxMZ > 0 {
		c.crop(scan)
	}

	if c.SmoothingSigma > 0 && len(scan.Points) > 0 {
		smoothed, err := Smooth(scan.Intensities(), c.SmoothingSigma)
		if err != nil {
			return err
		}
		for i := range scan.Points {
			scan.Points[i].Intensity = smoothed[i]
		}
	}

	if c.IntensityCutoff > 0 {
		c.gateByIntensity(scan)
	}

	scan.UpdateBasePeak()
	return nil
}

// crop removes points outside the configured m/z window
func (c *Config) crop(scan *core.Scan) {
	var filtered []core.DataPoint
	for _, p := range scan.Points {
		if c.MinMZ > 0 && p.MZ < c.MinMZ {
			continue
		}
		if c.MaxMZ > 0 && p.MZ > c.MaxMZ {
			continue
		}
		filtered = append(filtered, p)
	}
	scan.Points = filtered
}

// gateByIntensity zeroes samples below the cutoff percentage of the base peak
func (c *Config) gateByIntensity(scan *core.Scan) {
	threshold := (c.IntensityCutoff / 100.0) * core.BasePeakIntensity(scan.Points)
	for i := range scan.Points {
		if scan.Points[i].Intensity < threshold {
			scan.Points[i].Intensity = 0
		}
	}
}

// TopN keeps the n most intense peaks, returned in ascending m/z order.
// Ties keep the lower m/z. n <= 0 keeps everything.
func TopN(peaks []core.Peak, n int) []core.Peak {
	if n <= 0 || len(peaks) <= n {
		return peaks
	}

	// Create a copy and sort by intensity descending
	sorted := make([]core.Peak, len(peaks))
	copy(sorted, peaks)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Intensity > sorted[j].Intensity
	})

	top := sorted[:n]
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].MZ < top[j].MZ
	})
	return top
}
