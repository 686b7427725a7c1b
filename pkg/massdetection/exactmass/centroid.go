package exactmass

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// profile is a column view over a scan's points.
type profile struct {
	points      []core.DataPoint
	mz          []float64
	intensities []float64
}

func newProfile(points []core.DataPoint) profile {
	p := profile{
		points:      points,
		mz:          make([]float64, len(points)),
		intensities: make([]float64, len(points)),
	}
	for i, dp := range points {
		p.mz[i] = dp.MZ
		p.intensities[i] = dp.Intensity
	}
	return p
}

// centroids turns one run into peaks above noiseLevel.
//
// A run with a single maximum and no minimum is integrated over [start, end).
// Otherwise sub-range k spans from the previous minimum (or start) to the
// next minimum (or end), both inclusive, and is reported with the intensity of
// maximum k. Ranges never extend past the last point.
func (p profile) centroids(r run, noiseLevel float64) []core.Peak {
	if len(r.minima) == 0 {
		if len(r.maxima) != 1 {
			return nil
		}
		top := p.intensities[r.maxima[0]]
		if top <= noiseLevel {
			return nil
		}
		return []core.Peak{p.centroid(r.start, r.end, top)}
	}

	var peaks []core.Peak
	lo, hi := r.start, r.minima[0]
	for k, idx := range r.maxima {
		if top := p.intensities[idx]; top > noiseLevel {
			peaks = append(peaks, p.centroid(lo, min(hi+1, len(p.points)), top))
		}
		lo = hi
		if k+1 < len(r.minima) {
			hi = r.minima[k+1]
		} else {
			hi = r.end
		}
	}
	return peaks
}

// centroid integrates points[lo:hi] into a peak of the given intensity.
func (p profile) centroid(lo, hi int, intensity float64) core.Peak {
	weighted := vecmath.DotProduct(p.mz[lo:hi], p.intensities[lo:hi])
	total := vecmath.Sum(p.intensities[lo:hi])

	support := make([]core.DataPoint, hi-lo)
	copy(support, p.points[lo:hi])

	return core.Peak{
		MZ:        weighted / total,
		Intensity: intensity,
		Points:    support,
	}
}
