package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/fileio/internal/demo"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo [dir]",
		Short: "Export a sample of every format and import them back",
		Long: `Writes one sample file per format into dir, then imports every importable
file and prints what was read. Without dir, output_dir from the
configuration is used, or a new temporary directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.OutputDir
			if len(args) == 1 {
				dir = args[0]
			}

			if dir == "" {
				tmp, err := os.MkdirTemp("", "fileio-demo-")
				if err != nil {
					return err
				}
				dir = tmp
			} else if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Writing demo files to %s\n", dir)
			return demo.Run(a.porter, dir, cmd.OutOrStdout())
		},
	}
}
