// Package cmd provides CLI command implementations
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inambioinfo/mzmine2/internal/logger"
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "exactmass",
		Short: "exactmass - exact mass detection for profile scans",
		Long: `exactmass turns profile-mode mass spectra into centroided peak lists.

Each scan is split into runs of positive intensity, every local maximum of a
run becomes one peak (intensity-weighted m/z centroid), and an optional
lateral pass removes shoulder artifacts using a peak shape model.

Input scans are read from MSP-style text or mzVault-style SQLite files.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress and per-scan diagnostics to stderr")

	root.AddCommand(newDetectCmd())
	root.AddCommand(newModelsCmd())
	root.AddCommand(newSummarizeCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
