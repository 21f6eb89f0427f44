package rustup

import (
	"context"
	"io"
)

// fakeRunner records commands and replies with canned stdout per command line.
type fakeRunner struct {
	calls  []string
	stdout map[string]string
	fail   map[string]error
}

func (f *fakeRunner) Run(_ context.Context, c Command) error {
	line := c.String()
	f.calls = append(f.calls, line)
	if err := f.fail[line]; err != nil {
		return err
	}
	if c.Stdout != nil {
		if out, ok := f.stdout[line]; ok {
			_, _ = io.WriteString(c.Stdout, out)
		}
	}
	return nil
}

