package rustup

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/bianoble/toolchain-action/internal/toolcache"
)

// Installer download locations.
const (
	UnixInstallerURL    = "https://sh.rustup.rs"
	WindowsInstallerURL = "https://win.rustup.rs"
)

// PathAdder makes a directory visible on PATH for this and later steps.
type PathAdder interface {
	AddPath(dir string) error
}

// Installer bootstraps rustup when it is not on PATH.
type Installer struct {
	Downloader *Downloader
	Cache      *toolcache.Cache
	Runner     Runner
	Paths      PathAdder
	Logger     *slog.Logger
	// GOOS selects the installer flavour.
	GOOS string
	// Home is the user home; rustup installs into Home/.cargo/bin.
	Home string
	// URL replaces the platform installer URL when set.
	URL string
}

// Get returns the rustup found on PATH.
func Get(lookPath func(string) (string, error), runner Runner, logger *slog.Logger) (*RustUp, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath("rustup")
	if err != nil {
		return nil, fmt.Errorf("unable to locate executable file: rustup: %w", err)
	}
	return New(path, runner, logger), nil
}

// GetOrInstall returns the rustup on PATH, installing it first if missing.
func GetOrInstall(ctx context.Context, lookPath func(string) (string, error), in *Installer) (*RustUp, error) {
	r, err := Get(lookPath, in.Runner, in.Logger)
	if err == nil {
		return r, nil
	}
	in.logger().Debug(fmt.Sprintf("Unable to find \"rustup\" executable, installing it now. Reason: %s", err))
	return in.Install(ctx)
}

// Install downloads and runs rustup-init with no default toolchain.
func (in *Installer) Install(ctx context.Context) (*RustUp, error) {
	url, name, err := installerFor(in.GOOS)
	if err != nil {
		return nil, err
	}
	if in.URL != "" {
		url = in.URL
	}

	dl := in.Downloader
	if dl == nil {
		dl = &Downloader{}
	}
	content, err := dl.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("downloading rustup installer: %w", err)
	}

	hash, err := in.Cache.Store(content)
	if err != nil {
		return nil, fmt.Errorf("caching rustup installer: %w", err)
	}
	in.logger().Debug("Executing chmod 755 on the rustup installer", "sha256", hash)
	initPath, err := in.Cache.Install(hash, name, 0755)
	if err != nil {
		return nil, fmt.Errorf("preparing rustup installer: %w", err)
	}

	args := []string{"--default-toolchain", "none", "-y"}
	if err := in.Runner.Run(ctx, Command{Name: initPath, Args: args}); err != nil {
		return nil, fmt.Errorf("running rustup installer: %w", err)
	}

	if in.Paths != nil {
		if err := in.Paths.AddPath(filepath.Join(in.Home, ".cargo", "bin")); err != nil {
			return nil, fmt.Errorf("adding cargo bin to PATH: %w", err)
		}
	}

	return New("rustup", in.Runner, in.Logger), nil
}

func installerFor(goos string) (url, name string, err error) {
	switch goos {
	case "linux", "darwin":
		return UnixInstallerURL, "rustup-init.sh", nil
	case "windows":
		return WindowsInstallerURL, "rustup-init.exe", nil
	default:
		return "", "", fmt.Errorf("unknown platform %s, can't install rustup", goos)
	}
}

func (in *Installer) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return in.Logger
}
