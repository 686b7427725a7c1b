package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1.0, 2.0, 3.0}, []float64{1.0, 2.1, 3.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, d, 1e-15)
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
}

func TestScanFromIntensities(t *testing.T) {
	scan := ScanFromIntensities(100, 0.5, []float64{0, 3, 9, 0})
	require.Len(t, scan.Points, 4)
	assert.Equal(t, 101.5, scan.Points[3].MZ)
	assert.Equal(t, 9.0, scan.BasePeakIntensity)
}

func TestGaussianProfile(t *testing.T) {
	v := make([]float64, 201)
	GaussianProfile(v, 99, 0.01, 100, 0.1, 1000)
	assert.InDelta(t, 1000, v[100], 1e-9)
	assert.InDelta(t, 500, (v[95]+v[105])/2, 1e-6)
	assert.Equal(t, 0.0, v[0])
}

func TestDeterministicNoise(t *testing.T) {
	a := []float64{0, 1, 1, 0}
	b := []float64{0, 1, 1, 0}
	DeterministicNoise(a, 7, 0.5)
	DeterministicNoise(b, 7, 0.5)
	assert.Equal(t, a, b)
	assert.Equal(t, 0.0, a[0])
	assert.Equal(t, 0.0, a[3])
}

func TestRequireWithin(t *testing.T) {
	RequireWithin(t, []float64{1, 2.0000001}, []float64{1, 2}, 1e-6)
	RequireWithin(t, nil, []float64{}, 0)
	RequireFinite(t, []float64{0, -1, 1e300})
}
