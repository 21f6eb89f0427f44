package rustup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is a single process invocation.
type Command struct {
	Name string
	Args []string
	// Stdout additionally receives the process stdout when non-nil.
	Stdout io.Writer
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner runs commands. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// CommandError is returned when a command cannot start or exits non-zero.
type CommandError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s: exit code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec, echoing the command line and
// streaming output to Stdout and Stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, c Command) error {
	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	fmt.Fprintf(stdout, "[command]%s\n", c)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdout = stdout
	if c.Stdout != nil {
		cmd.Stdout = io.MultiWriter(stdout, c.Stdout)
	}
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		cerr := &CommandError{Command: c.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return cerr
	}
	return nil
}

// Output runs name with args and returns its stdout.
func Output(ctx context.Context, r Runner, name string, args ...string) (string, error) {
	var buf bytes.Buffer
	if err := r.Run(ctx, Command{Name: name, Args: args, Stdout: &buf}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
