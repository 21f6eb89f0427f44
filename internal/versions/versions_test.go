package versions

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bianoble/toolchain-action/internal/rustup"
)

type stubRunner struct {
	stdout map[string]string
	fail   error
}

func (s stubRunner) Run(_ context.Context, c rustup.Command) error {
	if s.fail != nil {
		return s.fail
	}
	_, _ = io.WriteString(c.Stdout, s.stdout[c.String()])
	return nil
}

type mapOutputs map[string]string

func (m mapOutputs) SetOutput(name, value string) error {
	m[name] = value
	return nil
}

func TestParseFull(t *testing.T) {
	tests := []struct {
		stdout string
		want   Version
	}{
		{"rustc 1.70.0 (90c541806 2023-05-31)\n", Version{Long: "1.70.0 (90c541806 2023-05-31)", Hash: "90c541806"}},
		{"cargo 1.70.0 (ec8a8a0ca 2023-04-25)", Version{Long: "1.70.0 (ec8a8a0ca 2023-04-25)", Hash: "ec8a8a0ca"}},
		{"rustc 1.80.0-nightly (ada5e2c7b 2024-05-31)", Version{Long: "1.80.0-nightly (ada5e2c7b 2024-05-31)", Hash: "ada5e2c7b"}},
	}
	for _, tt := range tests {
		got, err := ParseFull(tt.stdout)
		if err != nil {
			t.Fatalf("ParseFull(%q): %v", tt.stdout, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseFull(%q) mismatch (-want +got):\n%s", tt.stdout, diff)
		}
	}
}

func TestParseFullNoHash(t *testing.T) {
	if _, err := ParseFull("rustup 1.21.1\n"); err == nil {
		t.Error("expected error for version without hash")
	}
}

func TestParseShort(t *testing.T) {
	got, ok := ParseShort("rustup 1.21.1 \n")
	if !ok || got != "1.21.1" {
		t.Errorf("ParseShort = %q, %v", got, ok)
	}
	if _, ok := ParseShort("rustup"); ok {
		t.Error("expected no match for bare tool name")
	}
}

func TestGather(t *testing.T) {
	runner := stubRunner{stdout: map[string]string{
		"rustc -V":  "rustc 1.70.0 (90c541806 2023-05-31)\n",
		"cargo -V":  "cargo 1.70.0 (ec8a8a0ca 2023-04-25)\n",
		"rustup -V": "rustup 1.26.0\n",
	}}
	out := mapOutputs{}
	g := &Gatherer{Runner: runner, Outputs: out}

	if err := g.Gather(context.Background()); err != nil {
		t.Fatalf("Gather: %v", err)
	}
	want := mapOutputs{
		"rustc":      "1.70.0 (90c541806 2023-05-31)",
		"rustc_hash": "90c541806",
		"cargo":      "1.70.0 (ec8a8a0ca 2023-04-25)",
		"rustup":     "1.26.0",
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestGatherRustcShortFallbackWarns(t *testing.T) {
	runner := stubRunner{stdout: map[string]string{
		"rustc -V":  "rustc 1.70.0\n",
		"cargo -V":  "cargo\n",
		"rustup -V": "rustup 1.26.0\n",
	}}
	out := mapOutputs{}
	var buf bytes.Buffer
	g := &Gatherer{Runner: runner, Outputs: out, Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	if err := g.Gather(context.Background()); err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if out["rustc"] != "1.70.0" {
		t.Errorf("rustc = %q", out["rustc"])
	}
	if _, ok := out["rustc_hash"]; ok {
		t.Error("rustc_hash set without a hash")
	}
	if v, ok := out["cargo"]; !ok || v != "" {
		t.Errorf("cargo = %q, %v; want empty output", v, ok)
	}
	if strings.Count(buf.String(), "level=WARN") != 2 {
		t.Errorf("expected two warnings:\n%s", buf.String())
	}
}

func TestGatherCommandFailure(t *testing.T) {
	boom := errors.New("rustc not found")
	g := &Gatherer{Runner: stubRunner{fail: boom}, Outputs: mapOutputs{}}
	if err := g.Gather(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
