package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

// RequireWithin stops the test unless got has the length of want and every
// value lies within tol of its counterpart. Used for m/z and intensity
// columns where floating point summation order differs between paths.
func RequireWithin(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, w := range want {
		require.InDeltaf(t, w, got[i], tol, "value %d", i)
	}
}

// RequireFinite stops the test at the first NaN or infinite value.
func RequireFinite(t *testing.T, values []float64) {
	t.Helper()
	for i, v := range values {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "value %d is %v", i, v)
	}
}

// RequirePeaksSorted fails t unless peaks ascend by m/z and every peak has a
// non-empty, m/z-ordered support range.
func RequirePeaksSorted(t *testing.T, peaks []core.Peak) {
	t.Helper()
	for i, p := range peaks {
		if i > 0 && p.MZ < peaks[i-1].MZ {
			t.Fatalf("peak %d: m/z %v below previous %v", i, p.MZ, peaks[i-1].MZ)
		}
		if len(p.Points) == 0 {
			t.Fatalf("peak %d: empty support range", i)
		}
		for j := 1; j < len(p.Points); j++ {
			if p.Points[j].MZ < p.Points[j-1].MZ {
				t.Fatalf("peak %d: support point %d out of order", i, j)
			}
		}
	}
}

// PeakMZs returns the centroid m/z of every peak.
func PeakMZs(peaks []core.Peak) []float64 {
	out := make([]float64, len(peaks))
	for i, p := range peaks {
		out[i] = p.MZ
	}
	return out
}

// MaxAbsDiff reports the largest pointwise gap between two profiles of equal
// length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
