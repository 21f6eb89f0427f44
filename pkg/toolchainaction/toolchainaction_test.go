package toolchainaction

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestResolveEndToEnd(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rust-toolchain.toml"), []byte("[toolchain]\nchannel='nightly'\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := Resolve(dir, MapInputs{}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if opts.Name != "nightly" {
		t.Errorf("name = %q, want nightly", opts.Name)
	}
}

func TestResolveErrorTypes(t *testing.T) {
	_, err := Resolve(t.TempDir(), MapInputs{}, nil)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("err = %v, want *ConfigError", err)
	}
}

func TestMarshalOptions(t *testing.T) {
	opts := &ToolchainOptions{
		Name:       "1.63.0",
		Targets:    []string{"wasm32-unknown-unknown"},
		Components: []string{"rustfmt", "clippy"},
		Default:    true,
	}
	data, err := MarshalOptions(opts)
	if err != nil {
		t.Fatalf("MarshalOptions: %v", err)
	}
	for _, want := range []string{"name: 1.63.0", "default: true", "- rustfmt", "- wasm32-unknown-unknown"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("yaml missing %q:\n%s", want, data)
		}
	}

	var back ToolchainOptions
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Name != opts.Name || len(back.Components) != 2 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestRunFailsBeforeInstallWithoutToolchain(t *testing.T) {
	var out strings.Builder
	err := Run(context.Background(), Options{
		Dir:    t.TempDir(),
		Inputs: MapInputs{},
		Stdout: &out,
		Stderr: &out,
	})
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if strings.Contains(out.String(), "[command]") {
		t.Errorf("a command ran despite the failure:\n%s", out.String())
	}
}
