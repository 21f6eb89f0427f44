package config

import (
	"os"
	"strings"
)

// Input keys of the action schema.
const (
	InputToolchain  = "toolchain"
	InputTarget     = "target"
	InputDefault    = "default"
	InputOverride   = "override"
	InputProfile    = "profile"
	InputComponents = "components"
)

// Inputs looks up raw action input values. An empty result means the input
// was not given.
type Inputs interface {
	Input(key string) string
}

// MapInputs serves inputs from a map. Values are trimmed.
type MapInputs map[string]string

func (m MapInputs) Input(key string) string {
	return strings.TrimSpace(m[key])
}

// EnvInputs reads the INPUT_<KEY> variables set by the Actions runner.
type EnvInputs struct {
	Getenv func(string) string
}

// NewEnvInputs returns EnvInputs backed by the process environment.
func NewEnvInputs() EnvInputs {
	return EnvInputs{Getenv: os.Getenv}
}

func (e EnvInputs) Input(key string) string {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return strings.TrimSpace(getenv(EnvName(key)))
}

// EnvName returns the environment variable the runner uses for an input.
func EnvName(key string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(key, " ", "_"))
}

// OverlayInputs serves Values first and falls back to Base for keys not in
// Values. A key present in Values with an empty value hides Base.
type OverlayInputs struct {
	Base   Inputs
	Values map[string]string
}

func (o OverlayInputs) Input(key string) string {
	if v, ok := o.Values[key]; ok {
		return strings.TrimSpace(v)
	}
	if o.Base == nil {
		return ""
	}
	return o.Base.Input(key)
}

// inputBool returns true if the value is "true" (case-insensitive).
func inputBool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// splitList splits a comma-separated input, trimming entries and dropping
// empty ones.
func splitList(v string) []string {
	list := []string{}
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			list = append(list, s)
		}
	}
	return list
}
