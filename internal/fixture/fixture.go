// Package fixture locates test fixtures on disk and classifies them and
// their folders. All "is this folder shaped like X" decisions live here as
// explicit classifications so the walker and the evaluators cannot drift
// apart on what a folder means.
package fixture

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Reserved folder and file naming conventions of the evaluation tree.
const (
	// SourceExt is the extension of fixture source files.
	SourceExt = ".c"
	// CustomSuffix marks fixtures judged by exit status alone.
	CustomSuffix = ".custom.c"
	// HiddenDir holds fixtures run in batch, summarized, always last.
	HiddenDir = "hidden"
	// GradingDir holds instructor-only fixtures, excluded from grading.
	GradingDir = "grading"
)

// Kind selects the comparison semantics of a fixture.
type Kind string

const (
	// KindStandard compares expected and generated output streams.
	KindStandard Kind = "standard"
	// KindCustom skips stream comparison; the tool's exit code decides.
	KindCustom Kind = "custom"
)

// Fixture is one test source file with its expectation siblings. The
// expectation paths always point next to the source; a missing file means
// an empty expectation.
type Fixture struct {
	SourcePath         string
	ExpectedStdoutPath string
	ExpectedStderrPath string
	Kind               Kind
}

// New classifies a source path into a fixture.
func New(sourcePath string) Fixture {
	dir := filepath.Dir(sourcePath)
	name := filepath.Base(sourcePath)

	kind := KindStandard
	if strings.HasSuffix(name, CustomSuffix) {
		kind = KindCustom
	}

	return Fixture{
		SourcePath:         sourcePath,
		ExpectedStdoutPath: filepath.Join(dir, name+".stdout"),
		ExpectedStderrPath: filepath.Join(dir, name+".stderr"),
		Kind:               kind,
	}
}

// ExpectedStdout reads the expected standard output. A missing file is an
// empty expectation, not an error.
func (f Fixture) ExpectedStdout() (string, error) {
	return ReadOptional(f.ExpectedStdoutPath)
}

// ExpectedStderr reads the expected standard error. A missing file is an
// empty expectation, not an error.
func (f Fixture) ExpectedStderr() (string, error) {
	return ReadOptional(f.ExpectedStderrPath)
}

// BuildTarget returns the fixture's target path mirrored under the build
// output tree, the path handed to the test tool.
func (f Fixture) BuildTarget(evaluationDir, buildDir string) (string, error) {
	rel, err := filepath.Rel(evaluationDir, f.SourcePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(buildDir, "test", rel), nil
}

// OutputPaths returns where running the fixture deposited its generated
// stdout and stderr, mirrored under the build output tree.
func (f Fixture) OutputPaths(evaluationDir, buildDir string) (stdout, stderr string, err error) {
	rel, err := filepath.Rel(evaluationDir, f.SourcePath)
	if err != nil {
		return "", "", err
	}
	outputDir := filepath.Join(buildDir, "test", filepath.Dir(rel), "Output")
	name := filepath.Base(f.SourcePath)
	return filepath.Join(outputDir, name+".tmp.stdout"),
		filepath.Join(outputDir, name+".tmp.stderr"),
		nil
}

// ReadOptional reads a text file, treating a missing file as empty content.
func ReadOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
