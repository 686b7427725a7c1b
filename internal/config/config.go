// Package config loads exactmass run settings from a TOML file.
//
// A file looks like:
//
//	[exactmass]
//	noise_level = 1000.0
//	resolution = 60000
//	clean_lateral = true
//	peak_model = "gaussian"
//
//	[filter]
//	min_mz = 100.0
//	max_mz = 1500.0
//	cutoff = 0.5
//	smoothing_sigma = 0.0
//
//	[run]
//	threads = 4
//	top_n = 0
//
// Missing keys keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/inambioinfo/mzmine2/pkg/filter"
	"github.com/inambioinfo/mzmine2/pkg/massdetection/exactmass"
	"github.com/inambioinfo/mzmine2/pkg/peakmodel"
)

// ErrInvalid is returned when a loaded file holds out-of-range values.
var ErrInvalid = errors.New("config: invalid value")

// Detection holds the [exactmass] section.
type Detection struct {
	NoiseLevel   float64 `toml:"noise_level"`
	Resolution   int     `toml:"resolution"`
	CleanLateral bool    `toml:"clean_lateral"`
	PeakModel    string  `toml:"peak_model"`
}

// Filter holds the [filter] section.
type Filter struct {
	MinMZ          float64 `toml:"min_mz"`
	MaxMZ          float64 `toml:"max_mz"`
	Cutoff         float64 `toml:"cutoff"`
	SmoothingSigma float64 `toml:"smoothing_sigma"`
}

// Run holds the [run] section.
type Run struct {
	Threads int `toml:"threads"`
	TopN    int `toml:"top_n"`
}

// File is the full configuration file.
type File struct {
	Detection Detection `toml:"exactmass"`
	Filter    Filter    `toml:"filter"`
	Run       Run       `toml:"run"`
}

// Default returns the settings used when no file is given.
func Default() *File {
	d := exactmass.DefaultConfig()
	return &File{
		Detection: Detection{
			NoiseLevel:   d.NoiseLevel,
			Resolution:   d.Resolution,
			CleanLateral: d.CleanLateral,
			PeakModel:    string(d.PeakModel),
		},
		Run: Run{Threads: 1},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (*File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result. Unknown keys
// are rejected so typos do not silently fall back to defaults.
func Parse(data []byte, cfg *File) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks value ranges across all sections.
func (f *File) Validate() error {
	if f.Detection.NoiseLevel < 0 {
		return fmt.Errorf("%w: noise_level must be >= 0: %g", ErrInvalid, f.Detection.NoiseLevel)
	}
	if f.Detection.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be > 0: %d", ErrInvalid, f.Detection.Resolution)
	}
	if _, err := peakmodel.Lookup(f.Detection.PeakModel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if f.Run.Threads < 0 {
		return fmt.Errorf("%w: threads must be >= 0: %d", ErrInvalid, f.Run.Threads)
	}
	if f.Run.TopN < 0 {
		return fmt.Errorf("%w: top_n must be >= 0: %d", ErrInvalid, f.Run.TopN)
	}
	fc := f.FilterConfig()
	if err := fc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// DetectorConfig converts the [exactmass] section into detector settings.
func (f *File) DetectorConfig() exactmass.Config {
	cfg := exactmass.DefaultConfig()
	cfg.NoiseLevel = f.Detection.NoiseLevel
	cfg.Resolution = f.Detection.Resolution
	cfg.CleanLateral = f.Detection.CleanLateral
	cfg.PeakModel = peakmodel.Name(strings.TrimSpace(f.Detection.PeakModel))
	return cfg
}

// FilterConfig converts the [filter] section.
func (f *File) FilterConfig() *filter.Config {
	return &filter.Config{
		MinMZ:           f.Filter.MinMZ,
		MaxMZ:           f.Filter.MaxMZ,
		IntensityCutoff: f.Filter.Cutoff,
		SmoothingSigma:  f.Filter.SmoothingSigma,
	}
}

// Save writes f to path as TOML.
func (f *File) Save(path string) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
