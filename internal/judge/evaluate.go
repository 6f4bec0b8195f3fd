package judge

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kamilpajak/examinator/internal/fixture"
	"github.com/kamilpajak/examinator/internal/littool"
	"github.com/kamilpajak/examinator/internal/report"
	"github.com/kamilpajak/examinator/pkg/models"
)

// sourcePreviewLines caps how much fixture source is embedded in the leaf
// description.
const sourcePreviewLines = 10

// evaluate runs one fixture through the test tool and builds its outcome.
// Correctness follows the tool's exit code; the status string only flags
// timeouts. Custom fixtures skip all stream reads.
func (j *Judge) evaluate(ctx context.Context, fx fixture.Fixture) (models.Outcome, error) {
	result, err := j.invokeTool(ctx, fx)
	if err != nil {
		return models.Outcome{}, err
	}

	outcome := models.Outcome{
		Correct:         result.Correct,
		Status:          result.Status,
		DurationSeconds: result.Elapsed,
	}

	if fx.Kind == fixture.KindCustom {
		return outcome, nil
	}

	if outcome.ExpectedOutput, err = fx.ExpectedStdout(); err != nil {
		return models.Outcome{}, err
	}
	if outcome.ExpectedError, err = fx.ExpectedStderr(); err != nil {
		return models.Outcome{}, err
	}

	stdoutPath, stderrPath, err := fx.OutputPaths(j.evaluationDir, j.buildDir)
	if err != nil {
		return models.Outcome{}, err
	}
	// Generated files may be absent when the run was cut short (e.g. a
	// timeout before the redirect happened); treat that as empty output.
	if outcome.GeneratedOutput, err = fixture.ReadOptional(stdoutPath); err != nil {
		return models.Outcome{}, err
	}
	if outcome.GeneratedError, err = fixture.ReadOptional(stderrPath); err != nil {
		return models.Outcome{}, err
	}

	return outcome, nil
}

// evaluateCorrectness is the lean path for hidden tests: tool invocation
// only, no stream reads, no report leaf.
func (j *Judge) evaluateCorrectness(ctx context.Context, fx fixture.Fixture) (bool, error) {
	result, err := j.invokeTool(ctx, fx)
	if err != nil {
		return false, err
	}
	return result.Correct, nil
}

func (j *Judge) invokeTool(ctx context.Context, fx fixture.Fixture) (littool.Result, error) {
	if j.limiter != nil {
		if err := j.limiter.Wait(ctx); err != nil {
			return littool.Result{}, err
		}
	}

	target, err := fx.BuildTarget(j.evaluationDir, j.buildDir)
	if err != nil {
		return littool.Result{}, err
	}
	return j.tool.Run(ctx, target)
}

// runTest evaluates one fixture and emits exactly one report leaf.
func (j *Judge) runTest(ctx context.Context, fx fixture.Fixture) (models.Counter, error) {
	outcome, err := j.evaluate(ctx, fx)
	if err != nil {
		return models.Counter{}, err
	}

	description, err := j.testDescription(fx)
	if err != nil {
		return models.Counter{}, err
	}

	expected, generated, unexpectedError := comparisonStreams(outcome)

	j.sink.OpenTest(report.TestInfo{
		Description: description,
		Format:      report.FormatMarkdown,
		Expected:    expected,
	})
	defer j.sink.CloseTest(report.TestResult{
		Generated: generated,
		Correct:   outcome.Correct,
	})

	if outcome.TimedOut() {
		j.warnTimeout(outcome.DurationSeconds)
	} else if unexpectedError {
		j.warnUnexpectedError(outcome.GeneratedError)
	}

	counter := models.Counter{Total: 1}
	if outcome.Correct {
		counter.Correct = 1
	}
	return counter, nil
}

// comparisonStreams selects which stream pair the report compares. A
// non-empty expected error makes the error streams the subject; a merely
// existing-but-empty expectation file does not. When comparing stdout, any
// generated stderr is an unexpected error.
func comparisonStreams(o models.Outcome) (expected, generated string, unexpectedError bool) {
	if o.ExpectedError != "" {
		return o.ExpectedError, o.GeneratedError, false
	}
	return o.ExpectedOutput, o.GeneratedOutput, o.GeneratedError != ""
}

// testDescription renders the leaf heading: the fixture's relative path
// plus the first lines of its source.
func (j *Judge) testDescription(fx fixture.Fixture) (string, error) {
	rel, err := filepath.Rel(j.evaluationDir, fx.SourcePath)
	if err != nil {
		return "", err
	}

	source, err := fixture.ReadOptional(fx.SourcePath)
	if err != nil {
		return "", err
	}

	lines := strings.SplitAfter(source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > sourcePreviewLines {
		lines = append(lines[:sourcePreviewLines-1], "... // Remainder of code omitted")
	}
	code := strings.Join(lines, "")

	return fmt.Sprintf(" &#x1F4C4; %s\n```c\n%s\n```", rel, code), nil
}

func (j *Judge) warnUnexpectedError(errorText string) {
	warning := fmt.Sprintf("&#9889; **Your solution threw an unexpected error:**\n```\n%s\n```", errorText)
	j.sink.Message(report.Message{
		Description: quoteLines(warning),
		Format:      report.FormatMarkdown,
		Severity:    report.SeverityError,
	})
}

func (j *Judge) warnTimeout(durationSeconds float64) {
	warning := fmt.Sprintf("&#9201;&#65039; **Your solution timed out:** it took more than %.1f s", durationSeconds)
	j.sink.Message(report.Message{
		Description: quoteLines(warning),
		Format:      report.FormatMarkdown,
		Severity:    report.SeverityError,
	})
}

// quoteLines prefixes every line with a markdown quote marker.
func quoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}
