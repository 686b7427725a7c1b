package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inambioinfo/mzmine2/pkg/peakmodel"
)

func newModelsCmd() *cobra.Command {
	var (
		mz         float64
		intensity  float64
		resolution int
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the available peak shape models",
		Long: `List the peak shape models usable with --peak-model, with the base width each
gives for a reference peak. A peak inside another peak's base width is a
lateral peak candidate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reference peak: m/z %g, intensity %g, resolution %d\n", mz, intensity, resolution)
			fmt.Fprintln(out, "model\tbase_min\tbase_max\twidth")

			for _, name := range peakmodel.Names() {
				factory, err := peakmodel.Lookup(string(name))
				if err != nil {
					return err
				}
				model, err := factory(mz, intensity, resolution)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				base := model.BasePeakWidth()
				fmt.Fprintf(out, "%s\t%.6f\t%.6f\t%.6f\n", name, base.Min, base.Max, base.Size())
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&mz, "mz", 500, "Reference peak m/z")
	cmd.Flags().Float64Var(&intensity, "intensity", 1e6, "Reference peak intensity")
	cmd.Flags().IntVar(&resolution, "resolution", 60000, "Mass resolution")

	return cmd
}
