package peakmodel

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "Gaussian"},
		{name: "gaussian"},
		{name: "  Triangle "},
		{name: "LORENTZIAN"},
		{name: "EMG", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Lookup(tt.name)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownModel))
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []Name{Gaussian, Lorentzian, Triangle}, Names())
}

func TestInvalidParameters(t *testing.T) {
	for _, name := range Names() {
		f, err := Lookup(string(name))
		require.NoError(t, err)

		_, err = f(100, 1000, 0)
		assert.True(t, errors.Is(err, ErrInvalidParameters), "%s: zero resolution", name)
		_, err = f(math.NaN(), 1000, 1000)
		assert.True(t, errors.Is(err, ErrInvalidParameters), "%s: NaN m/z", name)
		_, err = f(100, -1, 1000)
		assert.True(t, errors.Is(err, ErrInvalidParameters), "%s: negative intensity", name)
	}
}

func TestShapeContract(t *testing.T) {
	const (
		center     = 500.0
		resolution = 10000
	)

	for _, name := range Names() {
		for _, height := range []float64{0.5, 2, 1e3, 1e7} {
			f, err := Lookup(string(name))
			require.NoError(t, err)
			m, err := f(center, height, resolution)
			require.NoError(t, err)

			r := m.BasePeakWidth()
			assert.True(t, r.Contains(center), "%s h=%v: width %v must contain center", name, height, r)
			assert.InDelta(t, center-r.Min, r.Max-center, 1e-9, "%s: symmetric width", name)
			assert.InDelta(t, height, m.IntensityAt(center), height*1e-12, "%s: apex", name)

			// Non-increasing away from the center on both sides.
			prevL, prevR := m.IntensityAt(center), m.IntensityAt(center)
			for i := 1; i <= 50; i++ {
				d := r.Size() / 2 * float64(i) / 50
				l, rr := m.IntensityAt(center-d), m.IntensityAt(center+d)
				assert.LessOrEqual(t, l, prevL, "%s: left side at %d", name, i)
				assert.LessOrEqual(t, rr, prevR, "%s: right side at %d", name, i)
				prevL, prevR = l, rr
			}
		}
	}
}

func TestGaussHalfMaximum(t *testing.T) {
	m, err := NewGauss(400, 1000, 4000)
	require.NoError(t, err)

	// FWHM = 400 / 4000 = 0.1
	assert.InDelta(t, 500, m.IntensityAt(400.05), 1e-6)
	assert.InDelta(t, 500, m.IntensityAt(399.95), 1e-6)

	r := m.BasePeakWidth()
	assert.InDelta(t, 1, m.IntensityAt(r.Max), 1e-9)
	assert.InDelta(t, 1, m.IntensityAt(r.Min), 1e-9)
}

func TestGaussWidthGrowsWithIntensity(t *testing.T) {
	small, err := NewGauss(400, 100, 4000)
	require.NoError(t, err)
	big, err := NewGauss(400, 1e6, 4000)
	require.NoError(t, err)

	assert.Greater(t, big.BasePeakWidth().Size(), small.BasePeakWidth().Size())
}

func TestTriangle(t *testing.T) {
	m, err := NewTriangle(200, 100, 1000)
	require.NoError(t, err)

	// FWHM = 0.2, base = [199.8, 200.2]
	r := m.BasePeakWidth()
	assert.InDelta(t, 199.8, r.Min, 1e-12)
	assert.InDelta(t, 200.2, r.Max, 1e-12)
	assert.InDelta(t, 50, m.IntensityAt(200.1), 1e-9)
	assert.Equal(t, 0.0, m.IntensityAt(200.3))
}

func TestLorentzian(t *testing.T) {
	m, err := NewLorentzian(300, 1000, 3000)
	require.NoError(t, err)

	// FWHM = 0.1
	assert.InDelta(t, 500, m.IntensityAt(300.05), 1e-9)

	r := m.BasePeakWidth()
	assert.InDelta(t, 1, m.IntensityAt(r.Max), 1e-9)
}
