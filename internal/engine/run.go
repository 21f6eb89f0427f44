package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bianoble/toolchain-action/internal/config"
	"github.com/bianoble/toolchain-action/internal/rustup"
)

// RunEngine resolves the requested toolchain and installs it with rustup.
type RunEngine struct {
	// Dir is searched for rust-toolchain / rust-toolchain.toml.
	Dir    string
	Inputs config.Inputs
	// Acquire returns a rustup, installing it if needed.
	Acquire  func(ctx context.Context) (Manager, error)
	Versions VersionGatherer
	Groups   Grouper
	Logger   *slog.Logger
}

// Run performs the whole action. Nothing is installed if option resolution
// fails.
func (e *RunEngine) Run(ctx context.Context) (*RunResult, error) {
	logger := e.logger()

	opts, err := config.ResolveDir(e.Dir, e.Inputs, logger)
	if err != nil {
		return nil, err
	}
	result := &RunResult{Options: opts}

	mgr, err := e.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring rustup: %w", err)
	}
	if err := mgr.Call(ctx, "show"); err != nil {
		return nil, err
	}

	result.SelfUpdated, err = e.selfUpdate(ctx, mgr, opts)
	if err != nil {
		return nil, err
	}

	if opts.Profile != "" {
		if err := mgr.SetProfile(ctx, opts.Profile); err != nil {
			return nil, fmt.Errorf("setting profile %s: %w", opts.Profile, err)
		}
	}

	// The latest nightly may lack a requested component. Dated nightlies are pins.
	result.AllowDowngrade = opts.Name == "nightly" && len(opts.Components) > 0

	err = mgr.InstallToolchain(ctx, opts.Name, rustup.InstallOptions{
		Components:     opts.Components,
		NoSelfUpdate:   !result.SelfUpdated,
		AllowDowngrade: result.AllowDowngrade,
		Default:        opts.Default,
		Override:       opts.Override,
	})
	if err != nil {
		return nil, err
	}

	for _, target := range opts.Targets {
		if err := mgr.AddTarget(ctx, target, opts.Name); err != nil {
			return nil, err
		}
	}

	active, err := mgr.ActiveToolchain(ctx)
	if err != nil {
		logger.Warn("could not determine the active toolchain", "error", err)
	} else {
		result.ActiveToolchain = active
		logger.Info(fmt.Sprintf("active toolchain: %s", active))
	}

	if e.Versions != nil {
		err := e.group("Gathering installed versions", func() error {
			return e.Versions.Gather(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("gathering installed versions: %w", err)
		}
	}

	return result, nil
}

// selfUpdate updates rustup when it is too old for the requested profile or
// components.
func (e *RunEngine) selfUpdate(ctx context.Context, mgr Manager, opts *config.ToolchainOptions) (bool, error) {
	needed := false
	if opts.Profile != "" {
		ok, err := mgr.SupportsProfiles(ctx)
		if err != nil {
			return false, err
		}
		needed = needed || !ok
	}
	if len(opts.Components) > 0 {
		ok, err := mgr.SupportsComponents(ctx)
		if err != nil {
			return false, err
		}
		needed = needed || !ok
	}
	if !needed {
		return false, nil
	}

	err := e.group("Updating rustup", func() error {
		return mgr.SelfUpdate(ctx)
	})
	if err != nil {
		return false, fmt.Errorf("updating rustup: %w", err)
	}
	return true, nil
}

func (e *RunEngine) group(name string, fn func() error) error {
	if e.Groups == nil {
		return fn()
	}
	return e.Groups.Group(name, fn)
}

func (e *RunEngine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
