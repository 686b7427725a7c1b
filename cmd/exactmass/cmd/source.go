package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inambioinfo/mzmine2/pkg/pipeline"
	"github.com/inambioinfo/mzmine2/pkg/reader/msp"
	"github.com/inambioinfo/mzmine2/pkg/reader/sqlite"
)

// detectFormat resolves the input format, falling back to the file extension.
func detectFormat(path, format string) (string, error) {
	if format == "" {
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".msp", ".txt":
			return "msp", nil
		case ".db", ".sqlite", ".db3":
			return "sqlite", nil
		default:
			return "", fmt.Errorf("cannot auto-detect format from extension '%s', please specify --from", ext)
		}
	}

	format = strings.ToLower(format)
	if format != "msp" && format != "sqlite" {
		return "", fmt.Errorf("invalid input format '%s', must be msp or sqlite", format)
	}
	return format, nil
}

// openSource opens path as a scan source. The returned close function must
// be called when reading is done.
func openSource(path, format string) (pipeline.Source, func() error, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("input file does not exist: %s", path)
	}

	format, err := detectFormat(path, format)
	if err != nil {
		return nil, nil, err
	}

	switch format {
	case "sqlite":
		r, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input file: %w", err)
		}
		return msp.NewReader(f, path), f.Close, nil
	}
}
