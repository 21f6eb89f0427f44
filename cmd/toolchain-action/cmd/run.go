package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bianoble/toolchain-action/pkg/toolchainaction"
)

var (
	runCacheDir        string
	runDownloadTimeout time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve and install the toolchain",
	Long: `Resolves the toolchain, installs rustup if it is missing, installs the
toolchain with the requested profile and components, adds targets, and
publishes the rustc, rustc_hash, cargo and rustup step outputs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir()
		if err != nil {
			return err
		}
		return toolchainaction.Run(cmd.Context(), toolchainaction.Options{
			Dir:             dir,
			Inputs:          inputs(cmd),
			Stdout:          cmd.OutOrStdout(),
			Stderr:          cmd.ErrOrStderr(),
			Logger:          newLogger(cmd.OutOrStdout()),
			CacheDir:        runCacheDir,
			DownloadTimeout: runDownloadTimeout,
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().StringVar(&runCacheDir, "cache-dir", "", "directory for downloaded installers (default: runner tool cache)")
		c.Flags().DurationVar(&runDownloadTimeout, "download-timeout", 5*time.Minute, "timeout for downloading the rustup installer")
	}
	rootCmd.AddCommand(runCmd)
}
