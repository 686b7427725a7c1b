package cmd

import (
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/inambioinfo/mzmine2/pkg/core"
)

type summary struct {
	scans      int
	points     int
	emptyScans int
	msLevels   map[int]int
	mzRange    core.Range
	basePeak   float64
	ticRange   core.Range
	withRT     int
}

func newSummarizeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize scan file contents",
		Long:  `Print summary statistics about a scan file including scan count, MS levels, m/z range, base peak and total ion current range.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSrc, err := openSource(args[0], format)
			if err != nil {
				return err
			}
			defer closeSrc()

			s := summary{
				msLevels: make(map[int]int),
				mzRange:  core.Range{Min: math.Inf(1), Max: math.Inf(-1)},
				ticRange: core.Range{Min: math.Inf(1), Max: math.Inf(-1)},
			}
			for src.Next() {
				s.add(src.Scan())
			}
			if err := src.Err(); err != nil {
				return fmt.Errorf("error reading input file: %w", err)
			}

			s.print(cmd, args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "from", "f", "", "Input format: msp, sqlite (auto-detect if not specified)")
	return cmd
}

func (s *summary) add(scan *core.Scan) {
	s.scans++
	s.msLevels[scan.MSLevel]++
	if scan.RetentionTime != nil {
		s.withRT++
	}
	if len(scan.Points) == 0 {
		s.emptyScans++
		return
	}

	s.points += len(scan.Points)
	r := scan.MZRange()
	s.mzRange.Min = math.Min(s.mzRange.Min, r.Min)
	s.mzRange.Max = math.Max(s.mzRange.Max, r.Max)
	s.basePeak = math.Max(s.basePeak, scan.BasePeakIntensity)

	tic := scan.TotalIonCurrent()
	s.ticRange.Min = math.Min(s.ticRange.Min, tic)
	s.ticRange.Max = math.Max(s.ticRange.Max, tic)
}

func (s *summary) print(cmd *cobra.Command, path string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "Scans: %d (%d empty)\n", s.scans, s.emptyScans)
	if s.scans == 0 {
		return
	}

	levels := make([]int, 0, len(s.msLevels))
	for l := range s.msLevels {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		fmt.Fprintf(out, "  MS%d: %d\n", l, s.msLevels[l])
	}

	fmt.Fprintf(out, "Profile points: %d\n", s.points)
	fmt.Fprintf(out, "Retention time: %d/%d scans\n", s.withRT, s.scans)
	if s.points > 0 {
		fmt.Fprintf(out, "m/z range: %.4f - %.4f\n", s.mzRange.Min, s.mzRange.Max)
		fmt.Fprintf(out, "Base peak: %g\n", s.basePeak)
		fmt.Fprintf(out, "TIC range: %g - %g\n", s.ticRange.Min, s.ticRange.Max)
	}
}
