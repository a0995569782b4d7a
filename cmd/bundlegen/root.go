package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/bundlegen/version"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bundlegen",
		Short:         "Generate job resources from pipelines and apply overrides",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(newCmdBundle(), newCmdVersion())
	return cmd
}

func newCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bundlegen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get())
		},
	}
}
