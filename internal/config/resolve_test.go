package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveInputsOnly(t *testing.T) {
	opts, err := Resolve(MapInputs{
		"toolchain": "nightly-2019-04-20",
		"default":   "false",
		"override":  "true",
	}, nil, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := &ToolchainOptions{
		Name:       "nightly-2019-04-20",
		Targets:    []string{},
		Default:    false,
		Override:   true,
		Profile:    "",
		Components: []string{},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveNoToolchain(t *testing.T) {
	_, err := Resolve(MapInputs{}, nil, nil)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
	if cerr.Error() != "toolchain input was not given and no override file provides a channel" {
		t.Errorf("message = %q", cerr.Error())
	}
}

func TestResolveOverrideWithoutChannel(t *testing.T) {
	_, err := Resolve(MapInputs{}, &ToolchainOverride{Path: strPtr("/opt/rust")}, nil)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
}

func TestResolveOverrideEmptyChannel(t *testing.T) {
	_, err := Resolve(MapInputs{}, &ToolchainOverride{Channel: strPtr("")}, nil)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ConfigError", err)
	}
}

func TestResolveFallsBackToOverride(t *testing.T) {
	opts, err := Resolve(MapInputs{"toolchain": ""}, &ToolchainOverride{Channel: strPtr("1.39.0")}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.Name != "1.39.0" {
		t.Errorf("name = %q, want 1.39.0", opts.Name)
	}
}

func TestResolveInputWinsOverOverride(t *testing.T) {
	opts, err := Resolve(MapInputs{"toolchain": "nightly"}, &ToolchainOverride{Channel: strPtr("1.39.0")}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.Name != "nightly" {
		t.Errorf("name = %q, want nightly", opts.Name)
	}
}

func TestResolveListFields(t *testing.T) {
	override := &ToolchainOverride{
		Channel:    strPtr("stable"),
		Components: []string{"rustfmt"},
		Targets:    []string{"wasm32-unknown-unknown"},
		Profile:    strPtr("minimal"),
	}

	tests := []struct {
		name   string
		inputs MapInputs
		want   *ToolchainOptions
	}{
		{
			name:   "override values",
			inputs: MapInputs{},
			want: &ToolchainOptions{
				Name:       "stable",
				Targets:    []string{"wasm32-unknown-unknown"},
				Profile:    "minimal",
				Components: []string{"rustfmt"},
			},
		},
		{
			name: "inputs split and trimmed",
			inputs: MapInputs{
				"components": " clippy ,, rustfmt , ",
				"target":     "x86_64-unknown-linux-musl",
				"profile":    "default",
				"default":    "TRUE",
			},
			want: &ToolchainOptions{
				Name:       "stable",
				Targets:    []string{"x86_64-unknown-linux-musl"},
				Default:    true,
				Profile:    "default",
				Components: []string{"clippy", "rustfmt"},
			},
		},
		{
			name:   "input of only separators is empty",
			inputs: MapInputs{"components": " , ,"},
			want: &ToolchainOptions{
				Name:       "stable",
				Targets:    []string{"wasm32-unknown-unknown"},
				Profile:    "minimal",
				Components: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Resolve(tt.inputs, override, nil)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if diff := cmp.Diff(tt.want, opts); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveDoesNotAliasOverride(t *testing.T) {
	override := &ToolchainOverride{Channel: strPtr("stable"), Components: []string{"rustfmt"}}
	opts, err := Resolve(MapInputs{}, override, nil)
	if err != nil {
		t.Fatal(err)
	}
	opts.Components[0] = "changed"
	if override.Components[0] != "rustfmt" {
		t.Errorf("override mutated through resolved options")
	}
}

func TestResolveLogsSources(t *testing.T) {
	logger, buf := bufferLogger()
	_, err := Resolve(MapInputs{"profile": "minimal"}, &ToolchainOverride{Channel: strPtr("1.39.0")}, logger)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`toolchain is using the value \"1.39.0\" from override file`,
		`profile is using the value \"minimal\" from input`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestResolveDirEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, StructuredFileName, "[toolchain]\nchannel='nightly'\n")

	opts, err := ResolveDir(dir, MapInputs{}, nil)
	if err != nil {
		t.Fatalf("ResolveDir: %v", err)
	}
	if opts.Name != "nightly" {
		t.Errorf("name = %q, want nightly", opts.Name)
	}
}

func TestResolveDirTrimsLegacyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LegacyFileName, "     1.39.0               ")

	opts, err := ResolveDir(dir, MapInputs{}, nil)
	if err != nil {
		t.Fatalf("ResolveDir: %v", err)
	}
	if opts.Name != "1.39.0" {
		t.Errorf("name = %q, want 1.39.0", opts.Name)
	}
}

func TestResolveDirStructuredFileInLegacyForm(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, StructuredFileName, "nightly")

	_, err := ResolveDir(dir, MapInputs{"toolchain": "stable"}, nil)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}
