package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inambioinfo/mzmine2/internal/logger"
)

func newValidateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate input file format and contents",
		Long: `Validate that an input file is properly formatted and that every scan is usable
for detection: finite non-negative intensities, positive ascending m/z values
and a base peak not below the most intense point.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSrc, err := openSource(args[0], format)
			if err != nil {
				return err
			}
			defer closeSrc()

			count, invalid := 0, 0
			for src.Next() {
				scan := src.Scan()
				count++
				if err := scan.Validate(); err != nil {
					invalid++
					logger.Warn("invalid scan %s: %v", scan.Name(), err)
					continue
				}
				logger.Debug("%s: ok (%d points)", scan.Name(), len(scan.Points))
			}
			if err := src.Err(); err != nil {
				return fmt.Errorf("error reading input file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Checked: %d scans\n", count)
			if invalid > 0 {
				return fmt.Errorf("%d of %d scans are invalid", invalid, count)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All scans valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "from", "f", "", "Input format: msp, sqlite (auto-detect if not specified)")
	return cmd
}
