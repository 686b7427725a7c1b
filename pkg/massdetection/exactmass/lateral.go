package exactmass

import (
	"fmt"

	"github.com/inambioinfo/mzmine2/pkg/core"
	"github.com/inambioinfo/mzmine2/pkg/peakmodel"
)

// lateralParams carries what the suppression pass needs besides the peaks.
type lateralParams struct {
	basePeak   float64
	noiseLevel float64
	resolution int
	factory    peakmodel.Factory
}

// removeLateralPeaks drops baseline clutter and shoulder peaks.
//
// Every peak at or above the noise level acts as a candidate, in m/z order,
// including peaks an earlier candidate already removed. For candidate C a
// compared peak P is dropped when
//
//   - P lies left of the noise width of a base-peak-sized peak at C and is
//     below the noise level, or
//   - P lies inside C's base width and below C's expected intensity there.
//
// The comparison stops at the first peak right of C's base width.
//
// peaks is not modified. If a model cannot be built the peaks retained so far
// are returned with an error wrapping ErrPeakModel.
func removeLateralPeaks(peaks []core.Peak, p lateralParams) ([]core.Peak, error) {
	live := append([]core.Peak(nil), peaks...)

	for _, c := range peaks {
		if c.Intensity < p.noiseLevel {
			continue
		}

		peakModel, err := p.factory(c.MZ, c.Intensity, p.resolution)
		if err != nil {
			return live, fmt.Errorf("%w: peak at m/z %g: %w", ErrPeakModel, c.MZ, err)
		}
		noiseModel, err := p.factory(c.MZ, p.basePeak, p.resolution)
		if err != nil {
			return live, fmt.Errorf("%w: base peak model at m/z %g: %w", ErrPeakModel, c.MZ, err)
		}

		rangePeak := peakModel.BasePeakWidth()
		rangeNoise := noiseModel.BasePeakWidth()

		kept := make([]core.Peak, 0, len(live))
		for i, cmp := range live {
			noise := cmp.MZ < rangeNoise.Min && cmp.Intensity < p.noiseLevel
			shoulder := rangePeak.Contains(cmp.MZ) && cmp.Intensity < peakModel.IntensityAt(cmp.MZ)
			if !noise && !shoulder {
				kept = append(kept, cmp)
			}
			if cmp.MZ > rangePeak.Max {
				kept = append(kept, live[i+1:]...)
				break
			}
		}
		live = kept
	}

	return live, nil
}
