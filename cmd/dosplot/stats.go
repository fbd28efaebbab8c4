package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoekstra/dosplot/src/analysis"
	"github.com/jhoekstra/dosplot/src/dosfile"
)

func newStatsCmd() *cobra.Command {
	var rangeSpec string
	cmd := &cobra.Command{
		Use:           "stats FILE",
		Short:         "Print summary statistics for a DOS file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := dosfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			if rangeSpec != "" {
				min, max, err := parseRange(rangeSpec)
				if err != nil {
					return err
				}
				if s, err = analysis.FilterRange(s, min, max); err != nil {
					return err
				}
			}
			sum, err := analysis.Summarize(s)
			if err != nil {
				return err
			}
			fmt.Printf("[stats] %s\n", args[0])
			fmt.Printf("  points:       %d\n", sum.Points)
			fmt.Printf("  energy range: %.4f .. %.4f eV\n", sum.EnergyMin, sum.EnergyMax)
			fmt.Printf("  DOS min/max:  %.6f / %.6f states/eV\n", sum.MinDOS, sum.MaxDOS)
			fmt.Printf("  DOS mean:     %.6f (std %.6f)\n", sum.MeanDOS, sum.StdDOS)
			fmt.Printf("  near E_F:     %.6f states/eV at %.4f eV\n", sum.FermiDOS, sum.FermiEnergy)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rangeSpec, "range", "r", "", "Restrict stats to the energy window MIN:MAX")
	return cmd
}
