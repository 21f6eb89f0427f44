package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	workDir string
	quiet   bool
)

// Input flags. They take precedence over INPUT_* variables when given.
var (
	flagToolchain  string
	flagTarget     string
	flagDefault    string
	flagOverride   string
	flagProfile    string
	flagComponents string
)

var rootCmd = &cobra.Command{
	Use:   "toolchain-action",
	Short: "Install a Rust toolchain for a CI job",
	Long: `toolchain-action resolves the requested Rust toolchain from action inputs
and the project's rust-toolchain or rust-toolchain.toml file, makes sure rustup
is available, and installs the toolchain with its components and targets.

Run without a subcommand it behaves like 'run'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "toolchain-action %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&workDir, "dir", "", "directory holding rust-toolchain(.toml) (default: current directory)")
	pf.BoolVar(&quiet, "quiet", false, "only log warnings and errors")

	pf.StringVar(&flagToolchain, "toolchain", "", "toolchain name, e.g. stable, nightly, 1.63.0")
	pf.StringVar(&flagTarget, "target", "", "comma-separated targets to add")
	pf.StringVar(&flagDefault, "default", "", "set the toolchain as default (true/false)")
	pf.StringVar(&flagOverride, "override", "", "set a directory override for the toolchain (true/false)")
	pf.StringVar(&flagProfile, "profile", "", "rustup profile to install with")
	pf.StringVar(&flagComponents, "components", "", "comma-separated components to install")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Errors are reported as a failed step.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		newLogger(rootCmd.ErrOrStderr()).Error(err.Error())
		return err
	}
	return nil
}
