package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoekstra/dosplot/src/analysis"
	"github.com/jhoekstra/dosplot/src/dosfile"
	"github.com/jhoekstra/dosplot/src/render"
	"github.com/jhoekstra/dosplot/src/types"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plot",
		Short:         "Render DOS files to an image",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newPlotSingleCmd())
	cmd.AddCommand(newPlotMultiCmd())
	return cmd
}

func newPlotSingleCmd() *cobra.Command {
	f := &plotFlags{}
	var exportCSV string
	cmd := &cobra.Command{
		Use:           "single FILE",
		Short:         "Plot one DOS file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			s, err := dosfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			filtered, err := analysis.FilterRange(s, opts.EnergyMin, opts.EnergyMax)
			if err != nil {
				return err
			}
			fmt.Printf("[plot] %s: %d points, %d in range [%.2f, %.2f]\n",
				args[0], s.Len(), filtered.Len(), opts.EnergyMin, opts.EnergyMax)
			if filtered.Len() == 0 {
				dosfile.Warnf("no data points in range [%.2f, %.2f]", opts.EnergyMin, opts.EnergyMax)
			}
			if err := render.WriteFile(f.output, []*types.Series{filtered}, opts); err != nil {
				return err
			}
			fmt.Printf("[plot] wrote %s\n", f.output)
			if exportCSV != "" {
				if err := dosfile.WriteCSVFile(exportCSV, filtered); err != nil {
					return err
				}
				fmt.Printf("[plot] exported %s (%d rows)\n", exportCSV, filtered.Len())
			}
			return nil
		},
	}
	addPlotFlags(cmd, f, "dos_plot.png")
	cmd.Flags().StringVar(&f.color, "color", "", "Line color (blue|red|green|black|purple|orange|gray)")
	cmd.Flags().StringVar(&exportCSV, "export-csv", "", "Also write the plotted points as CSV to this path")
	return cmd
}

func newPlotMultiCmd() *cobra.Command {
	f := &plotFlags{}
	cmd := &cobra.Command{
		Use:           "multi FILE [FILE...]",
		Short:         "Overlay several DOS files in one chart",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			all, err := dosfile.ReadAll(args)
			if err != nil {
				return err
			}
			series := make([]*types.Series, 0, len(all))
			inRange := 0
			for _, s := range all {
				filtered, err := analysis.FilterRange(s, opts.EnergyMin, opts.EnergyMax)
				if err != nil {
					return err
				}
				inRange += filtered.Len()
				series = append(series, filtered)
			}
			fmt.Printf("[plot] %d files, %d points in range [%.2f, %.2f]\n",
				len(series), inRange, opts.EnergyMin, opts.EnergyMax)
			if err := render.WriteFile(f.output, series, opts); err != nil {
				return err
			}
			fmt.Printf("[plot] wrote %s\n", f.output)
			return nil
		},
	}
	addPlotFlags(cmd, f, "dos_comparison.png")
	cmd.Flags().StringVarP(&f.scheme, "scheme", "c", "default", "Color scheme (default|rainbow|viridis|grayscale)")
	return cmd
}

func addPlotFlags(cmd *cobra.Command, f *plotFlags, defaultOut string) {
	cmd.Flags().StringVarP(&f.rangeSpec, "range", "r", "", "Energy window as MIN:MAX in eV (default -7:7)")
	cmd.Flags().StringVarP(&f.output, "output", "o", defaultOut, "Output image path (.png or .svg)")
	cmd.Flags().Float64Var(&f.lineWidth, "width", 0, "Line stroke width in pixels")
	cmd.Flags().StringVar(&f.size, "size", "", "Image size as WxH in pixels (default 1200x800)")
	cmd.Flags().StringVar(&f.title, "title", "", "Chart title")
	cmd.Flags().BoolVar(&f.noFermi, "no-fermi", false, "Hide the Fermi level guide at 0 eV")
	cmd.Flags().BoolVar(&f.noGrid, "no-grid", false, "Hide the grid")
}
