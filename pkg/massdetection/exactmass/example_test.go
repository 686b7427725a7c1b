package exactmass_test

import (
	"fmt"

	"github.com/inambioinfo/mzmine2/pkg/core"
	"github.com/inambioinfo/mzmine2/pkg/massdetection/exactmass"
	"github.com/inambioinfo/mzmine2/pkg/peakmodel"
)

func ExampleDetector_DetectMasses() {
	scan := &core.Scan{
		Number: 1,
		Points: []core.DataPoint{
			{MZ: 100, Intensity: 0},
			{MZ: 101, Intensity: 30},
			{MZ: 102, Intensity: 20},
			{MZ: 103, Intensity: 40},
			{MZ: 104, Intensity: 0},
		},
		BasePeakIntensity: 40,
	}

	d := exactmass.NewDetector(exactmass.WithNoiseLevel(10))
	peaks, err := d.DetectMasses(scan)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range peaks {
		fmt.Printf("%.3f %.0f (%d points)\n", p.MZ, p.Intensity, len(p.Points))
	}
	// Output:
	// 101.400 30 (3 points)
	// 102.667 40 (3 points)
}

func ExampleWithCleanLateral() {
	scan := &core.Scan{
		Points: []core.DataPoint{
			{MZ: 99.90, Intensity: 0},
			{MZ: 99.91, Intensity: 100},
			{MZ: 99.92, Intensity: 500},
			{MZ: 99.93, Intensity: 1000},
			{MZ: 99.94, Intensity: 500},
			{MZ: 99.95, Intensity: 200},
			{MZ: 99.96, Intensity: 100},
			{MZ: 99.97, Intensity: 150},
			{MZ: 99.98, Intensity: 100},
			{MZ: 99.99, Intensity: 0},
			{MZ: 100.00, Intensity: 0},
		},
		BasePeakIntensity: 1000,
	}

	d := exactmass.NewDetector(
		exactmass.WithNoiseLevel(10),
		exactmass.WithResolution(1000),
		exactmass.WithCleanLateral(true),
		exactmass.WithPeakModel(peakmodel.Triangle),
	)
	peaks, _ := d.DetectMasses(scan)
	fmt.Println(len(peaks), peaks[0].Intensity)
	// Output:
	// 1 1000
}
