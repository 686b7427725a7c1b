package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inambioinfo/mzmine2/internal/testutil"
	"github.com/inambioinfo/mzmine2/pkg/core"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "zero value", cfg: Config{}},
		{name: "full", cfg: Config{MinMZ: 100, MaxMZ: 200, IntensityCutoff: 5, SmoothingSigma: 1.5}},
		{name: "only max", cfg: Config{MaxMZ: 200}},
		{name: "inverted window", cfg: Config{MinMZ: 300, MaxMZ: 200}, wantErr: true},
		{name: "negative bound", cfg: Config{MinMZ: -1}, wantErr: true},
		{name: "cutoff above 100", cfg: Config{IntensityCutoff: 101}, wantErr: true},
		{name: "negative sigma", cfg: Config{SmoothingSigma: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApplyCrop(t *testing.T) {
	scan := testutil.ScanFromIntensities(100, 1, []float64{1, 2, 3, 4, 5, 6})
	cfg := &Config{MinMZ: 101, MaxMZ: 104}

	require.NoError(t, cfg.Apply(scan))
	assert.Equal(t, []float64{101, 102, 103, 104}, scan.MZs())
	assert.Equal(t, 5.0, scan.BasePeakIntensity)
}

func TestApplyIntensityCutoff(t *testing.T) {
	scan := testutil.ScanFromIntensities(100, 1, []float64{0, 4, 100, 6, 0})
	cfg := &Config{IntensityCutoff: 5}

	require.NoError(t, cfg.Apply(scan))
	assert.Equal(t, []float64{0, 0, 100, 6, 0}, scan.Intensities())
	assert.Len(t, scan.Points, 5, "gated samples stay in the profile")
}

func TestApplyInvalid(t *testing.T) {
	scan := testutil.ScanFromIntensities(100, 1, []float64{0, 4, 0})
	cfg := &Config{IntensityCutoff: 200}

	assert.True(t, errors.Is(cfg.Apply(scan), ErrInvalidConfig))
	assert.Equal(t, []float64{0, 4, 0}, scan.Intensities())
}

func TestActive(t *testing.T) {
	assert.False(t, (&Config{}).Active())
	assert.True(t, (&Config{SmoothingSigma: 1}).Active())
}

func TestTopN(t *testing.T) {
	peaks := []core.Peak{
		{MZ: 100, Intensity: 10},
		{MZ: 200, Intensity: 50},
		{MZ: 300, Intensity: 30},
		{MZ: 400, Intensity: 50},
		{MZ: 500, Intensity: 5},
	}

	top := TopN(peaks, 3)
	assert.Equal(t, []float64{200, 300, 400}, testutil.PeakMZs(top))
	assert.Equal(t, 100.0, peaks[0].MZ, "input order must be kept")

	assert.Len(t, TopN(peaks, 0), 5)
	assert.Len(t, TopN(peaks, 10), 5)

	// Equal intensities keep the lower m/z.
	assert.Equal(t, []float64{200}, testutil.PeakMZs(TopN(peaks, 1)))
}
