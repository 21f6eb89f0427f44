package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/pelletier/go-toml/v2"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindStringList
)

// toolchainSchema is the accepted shape of the [toolchain] section.
// Every field is optional; unknown keys are ignored.
var toolchainSchema = []struct {
	name string
	kind fieldKind
}{
	{"channel", kindString},
	{"path", kindString},
	{"components", kindStringList},
	{"targets", kindStringList},
	{"profile", kindString},
}

// ParseOverride parses override file content under the given mode.
//
// A single-line file under LegacyOrStructured is the legacy form: an absolute
// path names a local toolchain, anything else is a channel taken verbatim.
// Everything else must be a TOML document with a [toolchain] table.
func ParseOverride(content string, mode ParseMode) (*ToolchainOverride, error) {
	trimmed := trimContent(content)
	if trimmed == "" {
		return nil, &ParseError{Reason: "empty file"}
	}

	if mode == LegacyOrStructured && !strings.Contains(trimmed, "\n") {
		if filepath.IsAbs(trimmed) {
			return &ToolchainOverride{Path: &trimmed}, nil
		}
		return &ToolchainOverride{Channel: &trimmed}, nil
	}

	return parseStructured(trimmed)
}

// trimContent strips surrounding whitespace and byte order marks.
func trimContent(content string) string {
	return strings.TrimFunc(content, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

func parseStructured(content string) (*ToolchainOverride, error) {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &ParseError{Reason: "invalid TOML", Err: err}
	}

	raw, ok := doc["toolchain"]
	if !ok {
		return nil, &ParseError{Reason: "schema validation failed", Fields: []string{"toolchain: required section is missing"}}
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Reason: "schema validation failed", Fields: []string{fmt.Sprintf("toolchain: expected table, got %s", tomlType(raw))}}
	}

	ov := &ToolchainOverride{}
	var errs []string
	for _, f := range toolchainSchema {
		v, present := section[f.name]
		if !present {
			continue
		}
		prefix := "toolchain." + f.name
		switch f.kind {
		case kindString:
			s, ok := v.(string)
			if !ok {
				errs = append(errs, fmt.Sprintf("%s: expected string, got %s", prefix, tomlType(v)))
				continue
			}
			setStringField(ov, f.name, s)
		case kindStringList:
			list, fieldErrs := stringList(prefix, v)
			if len(fieldErrs) > 0 {
				errs = append(errs, fieldErrs...)
				continue
			}
			setListField(ov, f.name, list)
		}
	}
	if len(errs) > 0 {
		return nil, &ParseError{Reason: "schema validation failed", Fields: errs}
	}
	return ov, nil
}

func stringList(prefix string, v any) ([]string, []string) {
	items, ok := v.([]any)
	if !ok {
		return nil, []string{fmt.Sprintf("%s: expected array of strings, got %s", prefix, tomlType(v))}
	}
	list := make([]string, 0, len(items))
	var errs []string
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s[%d]: expected string, got %s", prefix, i, tomlType(item)))
			continue
		}
		list = append(list, s)
	}
	return list, errs
}

func setStringField(ov *ToolchainOverride, name, value string) {
	switch name {
	case "channel":
		ov.Channel = &value
	case "path":
		ov.Path = &value
	case "profile":
		ov.Profile = &value
	}
}

func setListField(ov *ToolchainOverride, name string, value []string) {
	switch name {
	case "components":
		ov.Components = value
	case "targets":
		ov.Targets = value
	}
}

// tomlType names the TOML type of a decoded value for error messages.
func tomlType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	case time.Time, toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return "datetime"
	default:
		return fmt.Sprintf("%T", v)
	}
}
