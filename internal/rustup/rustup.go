// Package rustup drives the rustup toolchain manager.
package rustup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/mod/semver"
)

// Minimum rustup versions for optional features.
const (
	ProfilesMinVersion   = "1.20.1"
	ComponentsMinVersion = "1.20.1"
)

// RustUp is a handle on a rustup executable.
type RustUp struct {
	Path   string
	Runner Runner
	Logger *slog.Logger
}

// New returns a RustUp for the executable at path.
func New(path string, runner Runner, logger *slog.Logger) *RustUp {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RustUp{Path: path, Runner: runner, Logger: logger}
}

// InstallOptions controls `rustup toolchain install`.
type InstallOptions struct {
	Components     []string
	NoSelfUpdate   bool
	AllowDowngrade bool
	// Default runs `rustup default <name>` after installing.
	Default bool
	// Override runs `rustup override set <name>` after installing.
	Override bool
}

// InstallArgs builds the `toolchain install` argument list.
func InstallArgs(name string, opts InstallOptions) []string {
	args := []string{"toolchain", "install", name}
	for _, c := range opts.Components {
		args = append(args, "--component", c)
	}
	if opts.NoSelfUpdate {
		args = append(args, "--no-self-update")
	}
	if opts.AllowDowngrade {
		args = append(args, "--allow-downgrade")
	}
	return args
}

// Call runs rustup with args.
func (r *RustUp) Call(ctx context.Context, args ...string) error {
	return r.Runner.Run(ctx, Command{Name: r.Path, Args: args})
}

// CallStdout runs rustup with args and returns its stdout.
func (r *RustUp) CallStdout(ctx context.Context, args ...string) (string, error) {
	return Output(ctx, r.Runner, r.Path, args...)
}

// InstallToolchain installs name and optionally makes it the default or the
// directory override.
func (r *RustUp) InstallToolchain(ctx context.Context, name string, opts InstallOptions) error {
	if err := r.Call(ctx, InstallArgs(name, opts)...); err != nil {
		return fmt.Errorf("installing toolchain %s: %w", name, err)
	}
	if opts.Default {
		if err := r.Call(ctx, "default", name); err != nil {
			return fmt.Errorf("setting default toolchain %s: %w", name, err)
		}
	}
	if opts.Override {
		if err := r.Call(ctx, "override", "set", name); err != nil {
			return fmt.Errorf("setting override toolchain %s: %w", name, err)
		}
	}
	return nil
}

// AddTarget adds a compilation target, scoped to toolchain when given.
func (r *RustUp) AddTarget(ctx context.Context, target, toolchain string) error {
	args := []string{"target", "add"}
	if toolchain != "" {
		args = append(args, "--toolchain", toolchain)
	}
	args = append(args, target)
	if err := r.Call(ctx, args...); err != nil {
		return fmt.Errorf("adding target %s: %w", target, err)
	}
	return nil
}

// ActiveToolchain returns the name of the active toolchain.
func (r *RustUp) ActiveToolchain(ctx context.Context) (string, error) {
	stdout, err := r.CallStdout(ctx, "show", "active-toolchain")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(stdout)
	if len(fields) == 0 {
		return "", fmt.Errorf("unable to determine active toolchain")
	}
	return fields[0], nil
}

// SetProfile runs `rustup set profile <name>`.
func (r *RustUp) SetProfile(ctx context.Context, name string) error {
	return r.Call(ctx, "set", "profile", name)
}

// SelfUpdate runs `rustup self update`.
func (r *RustUp) SelfUpdate(ctx context.Context) error {
	return r.Call(ctx, "self", "update")
}

// Version returns the rustup version, e.g. "1.26.0".
func (r *RustUp) Version(ctx context.Context) (string, error) {
	stdout, err := r.CallStdout(ctx, "-V")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(stdout)
	if len(fields) < 2 {
		return "", fmt.Errorf("unable to parse rustup version from %q", strings.TrimSpace(stdout))
	}
	return fields[1], nil
}

// SupportsProfiles reports whether the installed rustup knows about profiles.
func (r *RustUp) SupportsProfiles(ctx context.Context) (bool, error) {
	return r.supports(ctx, "profiles", ProfilesMinVersion)
}

// SupportsComponents reports whether the installed rustup accepts
// --component on toolchain install.
func (r *RustUp) SupportsComponents(ctx context.Context) (bool, error) {
	return r.supports(ctx, "components", ComponentsMinVersion)
}

func (r *RustUp) supports(ctx context.Context, feature, minVersion string) (bool, error) {
	version, err := r.Version(ctx)
	if err != nil {
		return false, err
	}
	ok, err := versionAtLeast(version, minVersion)
	if err != nil {
		return false, err
	}
	if ok {
		r.Logger.Info(fmt.Sprintf("Installed rustup %s support %s", version, feature))
	} else {
		r.Logger.Info(fmt.Sprintf("Installed rustup %s does not support %s, expected at least %s", version, feature, minVersion))
	}
	return ok, nil
}

func versionAtLeast(version, minVersion string) (bool, error) {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) {
		return false, fmt.Errorf("invalid rustup version %q", version)
	}
	return semver.Compare(v, "v"+minVersion) >= 0, nil
}
