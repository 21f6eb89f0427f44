package toolchainaction

import "github.com/bianoble/toolchain-action/internal/config"

// Type aliases re-export the resolution types as the public API.

type ToolchainOptions = config.ToolchainOptions
type ToolchainOverride = config.ToolchainOverride
type Inputs = config.Inputs
type MapInputs = config.MapInputs
type ParseError = config.ParseError
type ConfigError = config.ConfigError
type FileReadError = config.FileReadError
