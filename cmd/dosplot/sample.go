package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoekstra/dosplot/src/dosfile"
)

func newSampleCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:           "sample",
		Short:         "Write sample DOS files for trying the tool",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := dosfile.WriteSampleFiles(dir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Printf("[sample] wrote %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to write the sample files into")
	return cmd
}
