// Package core provides the data model shared by mass detection, scan readers
// and preprocessing: raw profile points, scans and centroided peaks.
package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// DataPoint is a single raw (m/z, intensity) sample of a profile scan.
type DataPoint struct {
	MZ        float64
	Intensity float64
}

// Scan is one acquisition: an m/z-ordered intensity profile plus metadata.
type Scan struct {
	Number        int
	MSLevel       int
	RetentionTime *float64 // minutes, if known
	Points        []DataPoint

	// BasePeakIntensity is the highest intensity in Points. Readers fill it in;
	// detection trusts it without rechecking.
	BasePeakIntensity float64

	// Internal tracking
	SourceFile   string
	SourceFormat string // msp, sqlite
}

// Peak is a centroided mass: the intensity-weighted m/z of Points and the
// intensity of the local maximum that produced it.
type Peak struct {
	MZ        float64
	Intensity float64
	Points    []DataPoint // contiguous raw range integrated into MZ
}

// Range is a closed m/z interval.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Size returns Max - Min.
func (r Range) Size() float64 {
	return r.Max - r.Min
}

// ValidationError represents an error found during scan validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a scan is usable as detection input.
func (s *Scan) Validate() error {
	var errs []string

	if len(s.Points) == 0 {
		errs = append(errs, "at least one data point is required")
	}

	maxIntensity := 0.0
	for i, p := range s.Points {
		if math.IsNaN(p.MZ) || math.IsInf(p.MZ, 0) {
			errs = append(errs, fmt.Sprintf("point %d has invalid m/z", i))
		}
		if math.IsNaN(p.Intensity) || math.IsInf(p.Intensity, 0) {
			errs = append(errs, fmt.Sprintf("point %d has invalid intensity", i))
			continue
		}
		if p.MZ <= 0 {
			errs = append(errs, fmt.Sprintf("point %d m/z must be positive", i))
		}
		if p.Intensity < 0 {
			errs = append(errs, fmt.Sprintf("point %d intensity must be non-negative", i))
		}
		maxIntensity = math.Max(maxIntensity, p.Intensity)
	}

	if !s.ArePointsSorted() {
		errs = append(errs, "points must be sorted by m/z")
	}
	if s.BasePeakIntensity < maxIntensity {
		errs = append(errs, fmt.Sprintf("base peak intensity %g is below the maximum point intensity %g",
			s.BasePeakIntensity, maxIntensity))
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   fmt.Sprintf("Scan %d", s.Number),
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// ArePointsSorted checks if points are sorted by m/z in ascending order.
func (s *Scan) ArePointsSorted() bool {
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].MZ < s.Points[i-1].MZ {
			return false
		}
	}
	return true
}

// SortPoints sorts points by m/z in ascending order.
func (s *Scan) SortPoints() {
	sort.SliceStable(s.Points, func(i, j int) bool {
		return s.Points[i].MZ < s.Points[j].MZ
	})
}

// Intensities returns the intensity column of the scan.
func (s *Scan) Intensities() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Intensity
	}
	return out
}

// MZs returns the m/z column of the scan.
func (s *Scan) MZs() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.MZ
	}
	return out
}

// UpdateBasePeak recomputes BasePeakIntensity from the points.
func (s *Scan) UpdateBasePeak() {
	s.BasePeakIntensity = BasePeakIntensity(s.Points)
}

// TotalIonCurrent returns the summed intensity of all points.
func (s *Scan) TotalIonCurrent() float64 {
	return vecmath.Sum(s.Intensities())
}

// MZRange returns the m/z interval covered by the scan. The zero Range is
// returned for an empty scan.
func (s *Scan) MZRange() Range {
	if len(s.Points) == 0 {
		return Range{}
	}
	return Range{Min: s.Points[0].MZ, Max: s.Points[len(s.Points)-1].MZ}
}

// Name returns the scan name in format "scan=<Number>"
func (s *Scan) Name() string {
	return fmt.Sprintf("scan=%d", s.Number)
}

// BasePeakIntensity returns the highest intensity among points, 0 if empty.
// Intensities are expected to be non-negative.
func BasePeakIntensity(points []DataPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	intensities := make([]float64, len(points))
	for i, p := range points {
		intensities[i] = p.Intensity
	}
	return vecmath.MaxAbs(intensities)
}
