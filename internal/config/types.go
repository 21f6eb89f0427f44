package config

// ParseMode selects which syntaxes are accepted for an override file.
type ParseMode int

const (
	// LegacyOrStructured accepts a bare single-line channel or path as well
	// as the TOML form. Used for the legacy rust-toolchain file.
	LegacyOrStructured ParseMode = iota
	// StructuredOnly accepts only the TOML form. Used for rust-toolchain.toml.
	StructuredOnly
)

func (m ParseMode) String() string {
	switch m {
	case LegacyOrStructured:
		return "legacy-or-structured"
	case StructuredOnly:
		return "structured-only"
	default:
		return "unknown"
	}
}

// OverrideFile is the raw content of a located override file.
type OverrideFile struct {
	Path    string
	Content string
}

// ToolchainOverride is the [toolchain] section of an override file.
// A nil field means the file did not declare it.
type ToolchainOverride struct {
	Channel    *string  `yaml:"channel,omitempty"`
	Path       *string  `yaml:"path,omitempty"`
	Components []string `yaml:"components,omitempty"`
	Targets    []string `yaml:"targets,omitempty"`
	Profile    *string  `yaml:"profile,omitempty"`
}

// ToolchainOptions is the final configuration handed to the installer.
type ToolchainOptions struct {
	Name       string   `yaml:"name"`
	Targets    []string `yaml:"targets"`
	Default    bool     `yaml:"default"`
	Override   bool     `yaml:"override"`
	Profile    string   `yaml:"profile"`
	Components []string `yaml:"components"`
}
