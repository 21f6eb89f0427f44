package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Override file names, checked in the working directory only.
const (
	LegacyFileName     = "rust-toolchain"
	StructuredFileName = "rust-toolchain.toml"
)

// Locate looks for the override files in dir and picks the one to parse.
// It returns a nil file when neither exists. When both exist the legacy file
// wins, as rustup itself does, and a warning is logged.
func Locate(dir string, logger *slog.Logger) (*OverrideFile, ParseMode, error) {
	logger = orDiscard(logger)

	legacy, err := tryReadFile(filepath.Join(dir, LegacyFileName), logger)
	if err != nil {
		return nil, 0, err
	}
	structured, err := tryReadFile(filepath.Join(dir, StructuredFileName), logger)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case legacy != nil && structured != nil:
		logger.Warn("both of `" + LegacyFileName + "` and `" + StructuredFileName + "` found. using `" + LegacyFileName + "` file as like rustup does.")
		return legacy, LegacyOrStructured, nil
	case legacy != nil:
		return legacy, LegacyOrStructured, nil
	case structured != nil:
		return structured, StructuredOnly, nil
	default:
		return nil, 0, nil
	}
}

// FindOverride locates and parses the override file in dir.
// It returns nil without error when the directory has no override file.
func FindOverride(dir string, logger *slog.Logger) (*ToolchainOverride, error) {
	file, mode, err := Locate(dir, logger)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}

	ov, err := ParseOverride(file.Content, mode)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = file.Path
		}
		return nil, err
	}
	return ov, nil
}

// tryReadFile returns nil if path does not exist. Any other failure is fatal.
func tryReadFile(path string, logger *slog.Logger) (*OverrideFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("override file not found", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}
	return &OverrideFile{Path: path, Content: string(data)}, nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
