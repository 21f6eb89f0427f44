package config

import (
	"fmt"
	"log/slog"
)

const (
	sourceInput    = "input"
	sourceOverride = "override file"
)

// Resolve merges action inputs with an optional override into the final
// options. A non-empty input wins over the override; a missing value falls
// back to the override and then to the zero value.
//
// The source of every field is reported on logger at debug level.
func Resolve(inputs Inputs, override *ToolchainOverride, logger *slog.Logger) (*ToolchainOptions, error) {
	logger = orDiscard(logger)
	if override == nil {
		override = &ToolchainOverride{}
	}

	if override.Channel == nil && inputs.Input(InputToolchain) == "" {
		return nil, &ConfigError{Reason: "toolchain input was not given and no override file provides a channel"}
	}

	opts := &ToolchainOptions{
		Name:       selectString(inputs, logger, InputToolchain, override.Channel),
		Targets:    selectList(inputs, logger, InputTarget, override.Targets),
		Default:    selectBool(inputs, logger, InputDefault),
		Override:   selectBool(inputs, logger, InputOverride),
		Profile:    selectString(inputs, logger, InputProfile, override.Profile),
		Components: selectList(inputs, logger, InputComponents, override.Components),
	}
	if opts.Name == "" {
		return nil, &ConfigError{Reason: "toolchain input was not given and the override file declares an empty channel"}
	}
	return opts, nil
}

// ResolveDir finds the override file in dir and resolves it against inputs.
func ResolveDir(dir string, inputs Inputs, logger *slog.Logger) (*ToolchainOptions, error) {
	ov, err := FindOverride(dir, logger)
	if err != nil {
		return nil, err
	}
	return Resolve(inputs, ov, logger)
}

func selectString(inputs Inputs, logger *slog.Logger, key string, override *string) string {
	input := inputs.Input(key)
	if input == "" && override != nil {
		logSource(logger, key, sourceOverride, *override)
		return *override
	}
	logSource(logger, key, sourceInput, input)
	return input
}

func selectList(inputs Inputs, logger *slog.Logger, key string, override []string) []string {
	input := inputs.Input(key)
	if input == "" && override != nil {
		logSource(logger, key, sourceOverride, override)
		return append([]string{}, override...)
	}
	logSource(logger, key, sourceInput, input)
	return splitList(input)
}

func selectBool(inputs Inputs, logger *slog.Logger, key string) bool {
	input := inputs.Input(key)
	logSource(logger, key, sourceInput, input)
	return inputBool(input)
}

func logSource(logger *slog.Logger, key, source string, value any) {
	logger.Debug(fmt.Sprintf("%s is using the value %q from %s", key, fmt.Sprint(value), source),
		"input", key, "source", source)
}
