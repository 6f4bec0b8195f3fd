// Package build runs the submission build step and captures what the
// diagnostic classifier needs: the stderr stream and the exit code.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Result captures one build invocation. Failed builds are a regular result,
// not an error: the stderr text and exit code feed the classifier.
type Result struct {
	OK       bool
	ExitCode int
	Stderr   string
}

// Params configures a build invocation.
type Params struct {
	// Dir is the working directory for the build command.
	Dir string
	// Command is the build command and its arguments.
	Command []string
	// Progress shows a terminal spinner while the build runs.
	Progress bool
}

// Run executes the build command. Only invocation problems (missing binary,
// bad working directory) are returned as errors; a failing build comes back
// as a Result with OK false.
func Run(ctx context.Context, p Params) (Result, error) {
	if len(p.Command) == 0 {
		return Result{}, fmt.Errorf("build: command is required")
	}

	if p.Progress && isatty.IsTerminal(os.Stderr.Fd()) {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " Building submission..."
		s.Start()
		defer s.Stop()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Dir = p.Dir
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{OK: true, Stderr: stderr.String()}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Result{}, fmt.Errorf("build: failed to run %s: %w", p.Command[0], err)
	}

	return Result{
		OK:       false,
		ExitCode: exitErr.ExitCode(),
		Stderr:   stderr.String(),
	}, nil
}
