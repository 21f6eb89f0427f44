// Package versions reports the versions of the installed Rust tools as
// step outputs.
package versions

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bianoble/toolchain-action/internal/rustup"
)

var (
	fullRegex  = regexp.MustCompile(`(?m)\S+\s((\S+)\s\((\S+)\s(\S+)\))`)
	shortRegex = regexp.MustCompile(`(?m)\S+\s(.+)`)
)

// Version is a parsed `<tool> -V` line.
type Version struct {
	Long string // e.g. "1.70.0 (90c541806 2023-05-31)"
	Hash string // e.g. "90c541806"
}

// ParseFull parses "<tool> <version> (<hash> <date>)". Some builds omit the
// hash, in which case it fails and ParseShort should be used instead.
func ParseFull(stdout string) (Version, error) {
	trimmed := strings.TrimSpace(stdout)
	m := fullRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, fmt.Errorf("unable to parse version from the %q string", trimmed)
	}
	return Version{Long: m[1], Hash: m[3]}, nil
}

// ParseShort returns everything after the tool name, or false if there is
// nothing after it.
func ParseShort(stdout string) (string, bool) {
	trimmed := strings.TrimSpace(stdout)
	m := shortRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// OutputSetter records step outputs.
type OutputSetter interface {
	SetOutput(name, value string) error
}

// Gatherer runs `rustc -V`, `cargo -V` and `rustup -V` and publishes the
// results as the rustc, rustc_hash, cargo and rustup outputs.
type Gatherer struct {
	Runner  rustup.Runner
	Outputs OutputSetter
	Logger  *slog.Logger
}

// Gather publishes all tool versions.
func (g *Gatherer) Gather(ctx context.Context) error {
	if err := g.rustc(ctx); err != nil {
		return err
	}
	if err := g.simple(ctx, "cargo"); err != nil {
		return err
	}
	return g.simple(ctx, "rustup")
}

func (g *Gatherer) rustc(ctx context.Context) error {
	stdout, err := rustup.Output(ctx, g.Runner, "rustc", "-V")
	if err != nil {
		return err
	}
	v, err := ParseFull(stdout)
	if err != nil {
		g.logger().Warn(err.Error())
		return g.Outputs.SetOutput("rustc", g.short(stdout))
	}
	if err := g.Outputs.SetOutput("rustc", v.Long); err != nil {
		return err
	}
	return g.Outputs.SetOutput("rustc_hash", v.Hash)
}

func (g *Gatherer) simple(ctx context.Context, tool string) error {
	stdout, err := rustup.Output(ctx, g.Runner, tool, "-V")
	if err != nil {
		return err
	}
	v, err := ParseFull(stdout)
	if err != nil {
		return g.Outputs.SetOutput(tool, g.short(stdout))
	}
	return g.Outputs.SetOutput(tool, v.Long)
}

func (g *Gatherer) short(stdout string) string {
	s, ok := ParseShort(stdout)
	if !ok {
		g.logger().Warn(fmt.Sprintf("Unable to determine version from the %q string", strings.TrimSpace(stdout)))
	}
	return s
}

func (g *Gatherer) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return g.Logger
}
