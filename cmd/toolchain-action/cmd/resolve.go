package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bianoble/toolchain-action/pkg/toolchainaction"
)

var resolveOutput string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved toolchain options",
	Long: `Reads the action inputs and the override file and prints the toolchain
options that 'run' would install with. Nothing is installed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir()
		if err != nil {
			return err
		}
		opts, err := toolchainaction.Resolve(dir, inputs(cmd), newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch resolveOutput {
		case "yaml":
			data, err := toolchainaction.MarshalOptions(opts)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		case "text":
			fmt.Fprintf(out, "name:       %s\n", opts.Name)
			fmt.Fprintf(out, "profile:    %s\n", opts.Profile)
			fmt.Fprintf(out, "components: %s\n", strings.Join(opts.Components, ", "))
			fmt.Fprintf(out, "targets:    %s\n", strings.Join(opts.Targets, ", "))
			fmt.Fprintf(out, "default:    %t\n", opts.Default)
			fmt.Fprintf(out, "override:   %t\n", opts.Override)
			return nil
		default:
			return fmt.Errorf("unknown output format '%s' — must be one of: yaml, text", resolveOutput)
		}
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "yaml", "output format: yaml or text")
	rootCmd.AddCommand(resolveCmd)
}
