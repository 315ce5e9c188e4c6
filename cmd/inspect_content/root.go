package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "inspect_content",
		Short:         "Inspect stored content bodies",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newFileCommand())
	rootCmd.AddCommand(newRecordCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}
