// Package judge walks the evaluation tree, runs every fixture through the
// external test tool, and folds correctness counters upward while emitting
// the nested report. Execution is sequential: one fixture at a time, no
// shared state beyond the accumulating counters.
package judge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamilpajak/examinator/internal/diagnose"
	"github.com/kamilpajak/examinator/internal/fixture"
	"github.com/kamilpajak/examinator/internal/littool"
	"github.com/kamilpajak/examinator/internal/report"
	"github.com/kamilpajak/examinator/pkg/models"
	"golang.org/x/time/rate"
)

// defaultBarWidth is the width of the hidden-test proportion bar.
const defaultBarWidth = 20

// Params configures a grading run.
type Params struct {
	// EvaluationDir is the root holding one rubric folder per tab.
	EvaluationDir string
	// BuildDir is the build output tree mirroring the evaluation tree.
	BuildDir string
	// Tool executes individual test targets.
	Tool littool.Runner
	// Sink receives the nested report.
	Sink report.Sink
	// Limiter optionally paces fixture executions; nil means unlimited.
	Limiter *rate.Limiter
	// BarWidth overrides the hidden-test bar width when positive.
	BarWidth int
}

// Judge grades one submission against the evaluation tree.
type Judge struct {
	evaluationDir string
	buildDir      string
	tool          littool.Runner
	sink          report.Sink
	limiter       *rate.Limiter
	barWidth      int

	tabs []models.TabScore
}

// New validates the parameters and returns a ready judge.
func New(p Params) (*Judge, error) {
	if p.Tool == nil {
		return nil, fmt.Errorf("judge: tool is required")
	}
	if p.Sink == nil {
		return nil, fmt.Errorf("judge: sink is required")
	}
	info, err := os.Stat(p.EvaluationDir)
	if err != nil {
		return nil, fmt.Errorf("judge: evaluation dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("judge: evaluation dir %s is not a directory", p.EvaluationDir)
	}

	barWidth := p.BarWidth
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	return &Judge{
		evaluationDir: p.EvaluationDir,
		buildDir:      p.BuildDir,
		tool:          p.Tool,
		sink:          p.Sink,
		limiter:       p.Limiter,
		barWidth:      barWidth,
	}, nil
}

// Run grades the whole evaluation tree and returns the final score. The
// judgement node is closed even when walking fails partway.
func (j *Judge) Run(ctx context.Context) (res models.Counter, err error) {
	j.tabs = nil

	j.sink.OpenJudgement()
	defer func() {
		j.sink.CloseJudgement(err == nil && res.Accepted())
	}()

	entries, err := os.ReadDir(j.evaluationDir)
	if err != nil {
		return models.Counter{}, fmt.Errorf("judge: reading evaluation dir: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		c, terr := j.tab(ctx, filepath.Join(j.evaluationDir, e.Name()))
		if terr != nil {
			err = terr
			return res, err
		}
		res = res.Add(c)
	}
	return res, nil
}

// TabScores returns the per-rubric breakdown of the last Run.
func (j *Judge) TabScores() []models.TabScore {
	return j.tabs
}

// tab grades one rubric folder. Grading-only rubrics are excluded outright:
// zero counter, no node.
func (j *Judge) tab(ctx context.Context, dir string) (res models.Counter, err error) {
	gradingOnly, err := fixture.IsGradingOnly(dir)
	if err != nil {
		return models.Counter{}, err
	}
	if gradingOnly {
		return models.Counter{}, nil
	}

	shape, err := fixture.ClassifyTab(dir)
	if err != nil {
		return models.Counter{}, err
	}

	title := fixture.Title(dir)
	j.sink.OpenTab(title)
	defer func() {
		j.sink.CloseTab(res.Incorrect())
	}()

	if shape == fixture.ShapeDummy {
		res, err = j.context(ctx, dir, true)
	} else {
		res, err = j.namedContexts(ctx, dir)
	}
	if err != nil {
		return res, err
	}

	j.tabs = append(j.tabs, models.TabScore{Tab: title, Correct: res.Correct, Total: res.Total})
	return res, nil
}

// namedContexts grades each subfolder of a rubric as its own sub-rubric.
// Grading folders are excluded entirely; a hidden folder is never expanded
// into a sub-rubric and runs last inside a synthetic context.
func (j *Judge) namedContexts(ctx context.Context, dir string) (res models.Counter, err error) {
	subdirs, err := fixture.ListSubdirs(dir)
	if err != nil {
		return models.Counter{}, err
	}

	hasHidden := false
	for _, name := range subdirs {
		switch name {
		case fixture.GradingDir:
			continue
		case fixture.HiddenDir:
			hasHidden = true
			continue
		}
		c, cerr := j.context(ctx, filepath.Join(dir, name), false)
		if cerr != nil {
			return res, cerr
		}
		res = res.Add(c)
	}

	if hasHidden {
		c, herr := j.hiddenContext(ctx, filepath.Join(dir, fixture.HiddenDir))
		if herr != nil {
			return res, herr
		}
		res = res.Add(c)
	}
	return res, nil
}

// context grades one sub-rubric folder. A dummy context renders no heading.
func (j *Judge) context(ctx context.Context, dir string, dummy bool) (res models.Counter, err error) {
	shape, err := fixture.ClassifyContext(dir)
	if err != nil {
		return models.Counter{}, err
	}

	description := ""
	if !dummy {
		description = "#### " + fixture.Title(dir)
	}
	j.sink.OpenContext(description)
	defer j.sink.CloseContext()

	if shape == fixture.ShapeDummy {
		c, cerr := j.testCase(ctx, dir)
		if cerr != nil {
			return res, cerr
		}
		res = res.Add(c)
	} else {
		subdirs, lerr := fixture.ListSubdirs(dir)
		if lerr != nil {
			return res, lerr
		}
		for _, name := range subdirs {
			// Hidden tests run last; grading folders never run.
			if name == fixture.HiddenDir || name == fixture.GradingDir {
				continue
			}
			c, cerr := j.testCase(ctx, filepath.Join(dir, name))
			if cerr != nil {
				return res, cerr
			}
			res = res.Add(c)
		}
	}

	hiddenDir := filepath.Join(dir, fixture.HiddenDir)
	if info, serr := os.Stat(hiddenDir); serr == nil && info.IsDir() {
		c, herr := j.runHidden(ctx, hiddenDir)
		if herr != nil {
			return res, herr
		}
		res = res.Add(c)
	}
	return res, nil
}

// hiddenContext wraps a tab-level hidden folder in a synthetic context so
// its summary nests correctly.
func (j *Judge) hiddenContext(ctx context.Context, dir string) (res models.Counter, err error) {
	j.sink.OpenContext("")
	defer j.sink.CloseContext()
	return j.runHidden(ctx, dir)
}

// testCase grades all sibling fixtures in one folder under a single
// test-case node. Zero fixtures is a valid empty group.
func (j *Judge) testCase(ctx context.Context, dir string) (res models.Counter, err error) {
	j.sink.OpenTestCase("##### " + fixture.Title(dir))
	defer func() {
		j.sink.CloseTestCase(res.Accepted())
	}()

	fixtures, err := fixture.ListSources(dir)
	if err != nil {
		return models.Counter{}, err
	}

	for _, fx := range fixtures {
		c, terr := j.runTest(ctx, fx)
		if terr != nil {
			return res, terr
		}
		res = res.Add(c)
	}
	return res, nil
}

// ReportBuildFailure emits a failed judgement wrapping the build
// diagnostic. Used to short-circuit the run when the submission does not
// build: no tests are executed.
func ReportBuildFailure(sink report.Sink, d models.Diagnostic) {
	sink.OpenJudgement()
	defer sink.CloseJudgement(false)
	diagnose.Report(sink, d)
}
