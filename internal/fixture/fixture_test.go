package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewStandardFixture(t *testing.T) {
	f := New(filepath.Join("eval", "literals", "a.c"))

	assert.Equal(t, KindStandard, f.Kind)
	assert.Equal(t, filepath.Join("eval", "literals", "a.c.stdout"), f.ExpectedStdoutPath)
	assert.Equal(t, filepath.Join("eval", "literals", "a.c.stderr"), f.ExpectedStderrPath)
}

func TestNewCustomFixture(t *testing.T) {
	f := New(filepath.Join("eval", "literals", "x.custom.c"))

	assert.Equal(t, KindCustom, f.Kind)
}

func TestExpectedStreamsMissingFilesAreEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.c"), "int main() {}")

	f := New(filepath.Join(dir, "a.c"))

	out, err := f.ExpectedStdout()
	require.NoError(t, err)
	assert.Equal(t, "", out)

	errText, err := f.ExpectedStderr()
	require.NoError(t, err)
	assert.Equal(t, "", errText)
}

func TestExpectedStreamsReadSiblings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.c"), "int main() {}")
	writeFile(t, filepath.Join(dir, "a.c.stdout"), "5\n")
	writeFile(t, filepath.Join(dir, "a.c.stderr"), "oops\n")

	f := New(filepath.Join(dir, "a.c"))

	out, err := f.ExpectedStdout()
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	errText, err := f.ExpectedStderr()
	require.NoError(t, err)
	assert.Equal(t, "oops\n", errText)
}

func TestOutputPathsMirrorBuildTree(t *testing.T) {
	eval := filepath.Join("course", "evaluation")
	build := filepath.Join("course", "build")
	f := New(filepath.Join(eval, "literals", "numeric", "a.c"))

	stdout, stderr, err := f.OutputPaths(eval, build)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(build, "test", "literals", "numeric", "Output", "a.c.tmp.stdout"), stdout)
	assert.Equal(t, filepath.Join(build, "test", "literals", "numeric", "Output", "a.c.tmp.stderr"), stderr)

	target, err := f.BuildTarget(eval, build)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(build, "test", "literals", "numeric", "a.c"), target)
}

func TestListSourcesNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.c"), "")
	writeFile(t, filepath.Join(dir, "a.c"), "")
	writeFile(t, filepath.Join(dir, "a.c.stdout"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "nested", "c.c"), "")

	fixtures, err := ListSources(dir)
	require.NoError(t, err)

	require.Len(t, fixtures, 2)
	assert.Equal(t, filepath.Join(dir, "a.c"), fixtures[0].SourcePath)
	assert.Equal(t, filepath.Join(dir, "b.c"), fixtures[1].SourcePath)
}

func TestFindSourcesRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.c"), "")
	writeFile(t, filepath.Join(dir, "deep", "deeper", "b.c"), "")

	fixtures, err := FindSources(dir)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
}

func TestIsGradingOnly(t *testing.T) {
	t.Run("all fixtures under grading", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "grading", "secret.c"), "")
		writeFile(t, filepath.Join(dir, "grading", "sub", "other.c"), "")

		ok, err := IsGradingOnly(dir)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("visible fixture present", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "grading", "secret.c"), "")
		writeFile(t, filepath.Join(dir, "visible.c"), "")

		ok, err := IsGradingOnly(dir)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty folder counts as grading only", func(t *testing.T) {
		ok, err := IsGradingOnly(t.TempDir())
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestClassifyTab(t *testing.T) {
	t.Run("flat fixtures mean dummy context", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.c"), "")

		shape, err := ClassifyTab(dir)
		require.NoError(t, err)
		assert.Equal(t, ShapeDummy, shape)
	})

	t.Run("nested fixtures mean named sub-rubrics", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "numeric", "basics", "a.c"), "")

		shape, err := ClassifyTab(dir)
		require.NoError(t, err)
		assert.Equal(t, ShapeNamed, shape)
	})

	t.Run("only reserved subfolders stay dummy", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.c"), "")
		writeFile(t, filepath.Join(dir, "hidden", "h.c"), "")
		writeFile(t, filepath.Join(dir, "grading", "g.c"), "")

		shape, err := ClassifyTab(dir)
		require.NoError(t, err)
		assert.Equal(t, ShapeDummy, shape)
	})
}

func TestClassifyContext(t *testing.T) {
	t.Run("hidden only stays dummy", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.c"), "")
		writeFile(t, filepath.Join(dir, "hidden", "h.c"), "")

		shape, err := ClassifyContext(dir)
		require.NoError(t, err)
		assert.Equal(t, ShapeDummy, shape)
	})

	t.Run("named subfolders enumerate", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "basics", "a.c"), "")

		shape, err := ClassifyContext(dir)
		require.NoError(t, err)
		assert.Equal(t, ShapeNamed, shape)
	})
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"string_literals", "String literals"},
		{"error-handling", "Error handling"},
		{"Literals", "Literals"},
		{"UPPER_CASE", "Upper case"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Title(tt.in), "Title(%q)", tt.in)
	}
}
