package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoekstra/dosplot/src/analysis"
	"github.com/jhoekstra/dosplot/src/dosfile"
	"github.com/jhoekstra/dosplot/src/render"
	"github.com/jhoekstra/dosplot/src/types"
)

func newQuickCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:           "quick FILE",
		Short:         "Plot a DOS file with an auto-detected energy range",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := dosfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			min, max, err := analysis.AutoRange(s)
			if err != nil {
				return err
			}
			fmt.Printf("[quick] %s: %d points, auto range [%.2f, %.2f]\n", args[0], s.Len(), min, max)
			opts := types.DefaultPlotOptions()
			opts.EnergyMin, opts.EnergyMax = min, max
			filtered, err := analysis.FilterRange(s, min, max)
			if err != nil {
				return err
			}
			if err := render.WriteFile(output, []*types.Series{filtered}, opts); err != nil {
				return err
			}
			fmt.Printf("[quick] wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "dos_quick.png", "Output image path (.png or .svg)")
	return cmd
}
