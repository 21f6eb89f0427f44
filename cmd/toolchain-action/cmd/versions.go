package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bianoble/toolchain-action/pkg/toolchainaction"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Publish the installed rustc, cargo and rustup versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := toolchainaction.NewGatherer(cmd.OutOrStdout(), cmd.ErrOrStderr(), newLogger(cmd.OutOrStdout()))
		return g.Gather(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}
