// Package toolchainaction provides the Go library API for toolchain-action.
//
// toolchain-action resolves which Rust toolchain a CI job wants, from action
// inputs and the project's rust-toolchain or rust-toolchain.toml file, and
// installs it with rustup.
//
// # Basic Usage
//
//	opts, err := toolchainaction.Resolve(".", toolchainaction.MapInputs{
//	    "toolchain":  "",
//	    "components": "rustfmt,clippy",
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(opts.Name)
//
//	// Install it.
//	err = toolchainaction.Run(ctx, toolchainaction.Options{Dir: "."})
package toolchainaction

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/toolchain-action/internal/actions"
	"github.com/bianoble/toolchain-action/internal/config"
	"github.com/bianoble/toolchain-action/internal/engine"
	"github.com/bianoble/toolchain-action/internal/rustup"
	"github.com/bianoble/toolchain-action/internal/toolcache"
	"github.com/bianoble/toolchain-action/internal/versions"
)

// Resolve returns the toolchain options for dir. inputs take precedence over
// the override file; logger may be nil.
func Resolve(dir string, inputs Inputs, logger *slog.Logger) (*ToolchainOptions, error) {
	return config.ResolveDir(dir, inputs, logger)
}

// MarshalOptions renders resolved options as YAML.
func MarshalOptions(opts *ToolchainOptions) ([]byte, error) {
	return yaml.Marshal(opts)
}

// Options configures a Run.
type Options struct {
	// Dir holds the override files. Default: the current directory.
	Dir string
	// Inputs defaults to the INPUT_* environment variables.
	Inputs Inputs
	// Stdout receives workflow commands and tool output. Default: os.Stdout.
	Stdout io.Writer
	// Stderr receives tool error output. Default: os.Stderr.
	Stderr io.Writer
	// Logger defaults to a workflow-command logger on Stdout.
	Logger *slog.Logger
	// CacheDir stores downloaded installers. Default: toolcache.DefaultDir().
	CacheDir string
	// DownloadTimeout bounds the installer download (0 = none).
	DownloadTimeout time.Duration
}

// Run resolves the toolchain and installs it, then publishes the rustc,
// rustc_hash, cargo and rustup outputs.
func Run(ctx context.Context, opts Options) error {
	opts = withDefaults(opts)
	workflow := actions.FromEnv(opts.Stdout)
	runner := rustup.ExecRunner{Stdout: opts.Stdout, Stderr: opts.Stderr}

	eng := &engine.RunEngine{
		Dir:    opts.Dir,
		Inputs: opts.Inputs,
		Acquire: func(ctx context.Context) (engine.Manager, error) {
			cacheDir := opts.CacheDir
			if cacheDir == "" {
				cacheDir = toolcache.DefaultDir()
			}
			cache, err := toolcache.New(cacheDir)
			if err != nil {
				return nil, err
			}
			home, _ := os.UserHomeDir()
			r, err := rustup.GetOrInstall(ctx, exec.LookPath, &rustup.Installer{
				Downloader: &rustup.Downloader{Timeout: opts.DownloadTimeout},
				Cache:      cache,
				Runner:     runner,
				Paths:      workflow,
				Logger:     opts.Logger,
				GOOS:       runtime.GOOS,
				Home:       home,
			})
			if err != nil {
				return nil, err
			}
			return r, nil
		},
		Versions: NewGatherer(opts.Stdout, opts.Stderr, opts.Logger),
		Groups:   workflow,
		Logger:   opts.Logger,
	}
	_, err := eng.Run(ctx)
	return err
}

// NewGatherer returns a version gatherer publishing to the job outputs.
func NewGatherer(stdout, stderr io.Writer, logger *slog.Logger) *versions.Gatherer {
	return &versions.Gatherer{
		Runner:  rustup.ExecRunner{Stdout: stdout, Stderr: stderr},
		Outputs: actions.FromEnv(stdout),
		Logger:  logger,
	}
}

func withDefaults(opts Options) Options {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Inputs == nil {
		opts.Inputs = config.NewEnvInputs()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(actions.NewHandler(opts.Stdout, nil))
	}
	return opts
}
