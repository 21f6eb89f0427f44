package engine

import (
	"context"

	"github.com/bianoble/toolchain-action/internal/config"
	"github.com/bianoble/toolchain-action/internal/rustup"
)

// Manager is the part of rustup a run drives.
type Manager interface {
	Call(ctx context.Context, args ...string) error
	SupportsProfiles(ctx context.Context) (bool, error)
	SupportsComponents(ctx context.Context) (bool, error)
	SelfUpdate(ctx context.Context) error
	SetProfile(ctx context.Context, name string) error
	InstallToolchain(ctx context.Context, name string, opts rustup.InstallOptions) error
	AddTarget(ctx context.Context, target, toolchain string) error
	ActiveToolchain(ctx context.Context) (string, error)
}

// Grouper folds the output of fn into a named log group.
type Grouper interface {
	Group(name string, fn func() error) error
}

// VersionGatherer publishes the installed tool versions.
type VersionGatherer interface {
	Gather(ctx context.Context) error
}

// RunResult holds the outcome of a run.
type RunResult struct {
	Options        *config.ToolchainOptions
	SelfUpdated    bool
	AllowDowngrade bool
	// ActiveToolchain is empty when rustup could not report it.
	ActiveToolchain string
}
