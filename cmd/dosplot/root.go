package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoekstra/dosplot/src/dosfile"
)

// NewRootCmd creates the root command for dosplot.
func NewRootCmd() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:   "dosplot",
		Short: "Plot density of states curves from two-column energy/DOS files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			dosfile.SetLogLevel(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log verbosity (debug|info|warn|error)")

	cmd.AddCommand(newPlotCmd())
	cmd.AddCommand(newQuickCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newSampleCmd())
	return cmd
}

// Execute runs the root command with the provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
