package config

import (
	"fmt"
	"strings"
)

// FileReadError is returned when an override file exists but cannot be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading override file %s: %s", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// ParseError is returned for empty, malformed or schema-invalid override files.
// Fields lists one message per offending field when the schema check failed.
type ParseError struct {
	Path   string
	Reason string
	Fields []string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "override file %s: ", e.Path)
	}
	b.WriteString(e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	if len(e.Fields) > 0 {
		b.WriteString(":\n  - ")
		b.WriteString(strings.Join(e.Fields, "\n  - "))
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError is returned when no toolchain name can be resolved.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}
