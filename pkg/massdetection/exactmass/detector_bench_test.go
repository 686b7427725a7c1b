package exactmass

import "testing"

func BenchmarkDetectMasses(b *testing.B) {
	scan := noisyScan()
	for _, tc := range []struct {
		name string
		d    *Detector
	}{
		{name: "centroid", d: NewDetector(WithNoiseLevel(20))},
		{name: "lateral", d: NewDetector(WithNoiseLevel(20), WithCleanLateral(true))},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := tc.d.DetectMasses(scan); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
