package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inambioinfo/mzmine2/internal/config"
	"github.com/inambioinfo/mzmine2/internal/logger"
	"github.com/inambioinfo/mzmine2/pkg/massdetection/exactmass"
	"github.com/inambioinfo/mzmine2/pkg/pipeline"
)

type detectOptions struct {
	inputFile   string
	inputFormat string
	outputFile  string
	configFile  string

	noiseLevel   float64
	resolution   int
	cleanLateral bool
	peakModel    string

	topN      int
	minMZ     float64
	maxMZ     float64
	cutoff    float64
	smoothing float64
	threads   int
}

func newDetectCmd() *cobra.Command {
	o := &detectOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect exact masses in profile scans",
		Long: `Detect exact masses in every scan of an MSP or SQLite file and print one
tab-separated row per peak: scan, m/z, intensity, number of profile points.

Settings come from --config (TOML) when given; flags set on the command line
override the file.

Examples:
  # Detect with default settings
  exactmass detect --in run.msp

  # Remove lateral peaks with a Lorentzian model above a noise floor
  exactmass detect --in run.db --noise-level 500 --clean-lateral --peak-model lorentzian

  # Use a parameter file, 8 workers, keep the 50 most intense peaks per scan
  exactmass detect --in run.msp --config params.toml --threads 8 --top-n 50 --out peaks.tsv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.inputFile, "in", "i", "", "Input file path (required)")
	f.StringVarP(&o.inputFormat, "from", "f", "", "Input format: msp, sqlite (auto-detect if not specified)")
	f.StringVarP(&o.outputFile, "out", "o", "", "Output TSV file (default stdout)")
	f.StringVar(&o.configFile, "config", "", "TOML parameter file")
	f.Float64Var(&o.noiseLevel, "noise-level", defaults.Detection.NoiseLevel, "Drop peaks whose maximum is not above this intensity")
	f.IntVar(&o.resolution, "resolution", defaults.Detection.Resolution, "Mass resolution used by the peak model")
	f.BoolVar(&o.cleanLateral, "clean-lateral", defaults.Detection.CleanLateral, "Remove lateral (shoulder) peaks")
	f.StringVar(&o.peakModel, "peak-model", defaults.Detection.PeakModel, "Peak model for lateral removal (see 'exactmass models')")
	f.IntVar(&o.topN, "top-n", 0, "Keep only top N most intense peaks per scan (0 = no limit)")
	f.Float64Var(&o.minMZ, "min-mz", 0, "Drop profile points below this m/z (0 = no bound)")
	f.Float64Var(&o.maxMZ, "max-mz", 0, "Drop profile points above this m/z (0 = no bound)")
	f.Float64Var(&o.cutoff, "cutoff", 0, "Zero profile points below this % of the base peak (0 = no cutoff)")
	f.Float64Var(&o.smoothing, "smooth", 0, "Gaussian smoothing width in points (0 = off)")
	f.IntVar(&o.threads, "threads", defaults.Run.Threads, "Number of worker threads")

	cmd.MarkFlagRequired("in")

	return cmd
}

// resolveConfig loads the parameter file and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, o *detectOptions) (*config.File, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := []struct {
		name  string
		apply func()
	}{
		{"noise-level", func() { cfg.Detection.NoiseLevel = o.noiseLevel }},
		{"resolution", func() { cfg.Detection.Resolution = o.resolution }},
		{"clean-lateral", func() { cfg.Detection.CleanLateral = o.cleanLateral }},
		{"peak-model", func() { cfg.Detection.PeakModel = o.peakModel }},
		{"top-n", func() { cfg.Run.TopN = o.topN }},
		{"threads", func() { cfg.Run.Threads = o.threads }},
		{"min-mz", func() { cfg.Filter.MinMZ = o.minMZ }},
		{"max-mz", func() { cfg.Filter.MaxMZ = o.maxMZ }},
		{"cutoff", func() { cfg.Filter.Cutoff = o.cutoff }},
		{"smooth", func() { cfg.Filter.SmoothingSigma = o.smoothing }},
	}
	for _, ov := range overrides {
		if flags.Changed(ov.name) {
			ov.apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDetect(cmd *cobra.Command, o *detectOptions) error {
	cfg, err := resolveConfig(cmd, o)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(o.inputFile, o.inputFormat)
	if err != nil {
		return err
	}
	defer closeSrc()

	var (
		out  io.Writer = cmd.OutOrStdout()
		file io.Closer
	)
	if o.outputFile != "" {
		f, err := os.Create(o.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if file != nil {
				file.Close()
			}
		}()
		out, file = f, f
	}
	w := bufio.NewWriter(out)

	logger.Section("Detect")
	logger.Info("input: %s", o.inputFile)
	logger.Info("noise level %g, resolution %d, clean lateral %t, peak model %s",
		cfg.Detection.NoiseLevel, cfg.Detection.Resolution, cfg.Detection.CleanLateral, cfg.Detection.PeakModel)
	logger.Info("threads: %d", cfg.Run.Threads)

	fmt.Fprintln(w, "scan\tmz\tintensity\tpoints")

	opts := pipeline.Options{
		Detector: exactmass.NewDetectorFromConfig(cfg.DetectorConfig()),
		Filter:   cfg.FilterConfig(),
		TopN:     cfg.Run.TopN,
		Threads:  cfg.Run.Threads,
	}
	stats, err := pipeline.Run(cmd.Context(), src, opts, func(r pipeline.Result) error {
		switch {
		case errors.Is(r.Err, pipeline.ErrSkipped):
			logger.Warn("skipping %s: %v", r.Scan.Name(), r.Err)
			return nil
		case r.Err != nil:
			logger.Warn("%s: lateral peaks kept: %v", r.Scan.Name(), r.Err)
		}

		for _, p := range r.Peaks {
			if _, err := fmt.Fprintf(w, "%d\t%.6f\t%g\t%d\n", r.Scan.Number, p.MZ, p.Intensity, len(p.Points)); err != nil {
				return err
			}
		}
		if (r.Index+1)%1000 == 0 {
			logger.Info("processed %d scans...", r.Index+1)
		}
		return nil
	})
	if err != nil {
		return err
	}
	err = finishOutput(w, file)
	file = nil
	if err != nil {
		return err
	}

	logger.Section("Summary")
	logger.Info("scans: %d, peaks: %d", stats.Scans, stats.Peaks)
	if stats.Skipped > 0 || stats.Degraded > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped: %d scans, lateral pass incomplete: %d scans\n", stats.Skipped, stats.Degraded)
	}

	return nil
}

// finishOutput flushes w and then closes file when one is set.
func finishOutput(w *bufio.Writer, file io.Closer) error {
	if err := w.Flush(); err != nil {
		if file != nil {
			file.Close()
		}
		return fmt.Errorf("failed to write output: %w", err)
	}
	if file == nil {
		return nil
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
