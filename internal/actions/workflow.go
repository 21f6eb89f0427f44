package actions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Workflow emits outputs, groups and PATH additions for the current job.
type Workflow struct {
	// Out receives workflow commands, usually os.Stdout.
	Out io.Writer
	// OutputFile is $GITHUB_OUTPUT. Empty falls back to ::set-output.
	OutputFile string
	// PathFile is $GITHUB_PATH. Empty falls back to ::add-path.
	PathFile string
	// Setenv updates the process environment. Defaults to os.Setenv.
	Setenv func(key, value string) error
	// Getenv reads the process environment. Defaults to os.Getenv.
	Getenv func(key string) string
}

// FromEnv returns a Workflow configured from the runner environment.
func FromEnv(out io.Writer) *Workflow {
	return &Workflow{
		Out:        out,
		OutputFile: os.Getenv("GITHUB_OUTPUT"),
		PathFile:   os.Getenv("GITHUB_PATH"),
	}
}

// SetOutput sets a step output.
func (w *Workflow) SetOutput(name, value string) error {
	if w.OutputFile == "" {
		_, err := fmt.Fprintf(w.Out, "::set-output name=%s::%s\n", EscapeProperty(name), EscapeData(value))
		return err
	}

	delim := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delim) {
		return fmt.Errorf("output name %q must not contain the delimiter %s", name, delim)
	}
	if strings.Contains(value, delim) {
		return fmt.Errorf("output value for %q must not contain the delimiter %s", name, delim)
	}
	return appendFile(w.OutputFile, fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, value, delim))
}

// AddPath prepends dir to PATH for this process and for later steps.
func (w *Workflow) AddPath(dir string) error {
	if w.PathFile == "" {
		if _, err := fmt.Fprintf(w.Out, "::add-path::%s\n", EscapeData(dir)); err != nil {
			return err
		}
	} else if err := appendFile(w.PathFile, dir+"\n"); err != nil {
		return err
	}

	getenv, setenv := w.Getenv, w.Setenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if setenv == nil {
		setenv = os.Setenv
	}
	path := dir
	if cur := getenv("PATH"); cur != "" {
		path = dir + string(filepath.ListSeparator) + cur
	}
	return setenv("PATH", path)
}

// Group wraps fn's output in a collapsible log group.
func (w *Workflow) Group(name string, fn func() error) error {
	fmt.Fprintf(w.Out, "::group::%s\n", EscapeData(name))
	defer fmt.Fprintln(w.Out, "::endgroup::")
	return fn()
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
