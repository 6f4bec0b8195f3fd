// Package littool invokes the external lit test tool and decodes its
// structured result record.
package littool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kamilpajak/examinator/pkg/models"
)

// Result is the outcome of running one lit target. Correct follows lit's
// process exit code; Status and Elapsed come from its result record and are
// informational (Status drives the timeout warning).
type Result struct {
	Correct bool
	Status  models.TestStatus
	Elapsed float64
}

// Runner executes one test target. Implementations block until the tool
// terminates; the tool enforces its own timeouts.
type Runner interface {
	Run(ctx context.Context, target string) (Result, error)
}

// Lit runs targets through the lit binary.
type Lit struct {
	// Binary is the lit executable, "lit" when empty.
	Binary string
}

// litOutput mirrors the JSON record lit writes with -o.
type litOutput struct {
	Tests []struct {
		Code    string  `json:"code"`
		Elapsed float64 `json:"elapsed"`
	} `json:"tests"`
}

// Run invokes lit on a single target. The structured result is captured in
// a temporary file that is removed on every exit path.
func (l *Lit) Run(ctx context.Context, target string) (Result, error) {
	binary := l.Binary
	if binary == "" {
		binary = "lit"
	}

	tmp, err := os.CreateTemp("", "lit-output-*.json")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create lit output file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to close lit output file: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, target, "-o", tmpPath)
	runErr := cmd.Run()

	// A nonzero exit code is lit's failure verdict, not an invocation
	// error. Anything else (binary missing, killed) is a real error.
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return Result{}, fmt.Errorf("failed to run %s: %w", binary, runErr)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read lit output: %w", err)
	}

	var out litOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Result{}, fmt.Errorf("failed to parse lit output: %w", err)
	}
	if len(out.Tests) == 0 {
		return Result{}, fmt.Errorf("lit output for %s contains no tests", target)
	}

	first := out.Tests[0]
	return Result{
		Correct: runErr == nil,
		Status:  models.TestStatus(first.Code),
		Elapsed: first.Elapsed,
	}, nil
}
