package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bianoble/toolchain-action/internal/actions"
	"github.com/bianoble/toolchain-action/internal/config"
)

// inputFlags maps action input keys to their flag names.
var inputFlags = map[string]string{
	config.InputToolchain:  "toolchain",
	config.InputTarget:     "target",
	config.InputDefault:    "default",
	config.InputOverride:   "override",
	config.InputProfile:    "profile",
	config.InputComponents: "components",
}

// inputs layers explicitly set flags over the INPUT_* environment variables.
func inputs(cmd *cobra.Command) config.Inputs {
	values := make(map[string]string)
	for key, name := range inputFlags {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			values[key] = f.Value.String()
		}
	}
	return config.OverlayInputs{Base: config.NewEnvInputs(), Values: values}
}

// resolveDir returns the directory searched for override files.
func resolveDir() (string, error) {
	if workDir != "" {
		return workDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return dir, nil
}

// newLogger returns a logger emitting workflow commands to w.
func newLogger(w io.Writer) *slog.Logger {
	var level slog.Level = slog.LevelDebug
	if quiet {
		level = slog.LevelWarn
	}
	return slog.New(actions.NewHandler(w, level))
}
