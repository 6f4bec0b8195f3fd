package fixture

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Shape says whether a folder level groups its children under named
// headings or collapses into a single synthetic level.
type Shape string

const (
	// ShapeDummy collapses the folder into one synthetic child level.
	ShapeDummy Shape = "dummy"
	// ShapeNamed treats each subfolder as its own named child level.
	ShapeNamed Shape = "named"
)

// ListSources returns the fixtures directly inside dir, non-recursive, in
// lexical order.
func ListSources(dir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var fixtures []Fixture
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SourceExt) {
			continue
		}
		fixtures = append(fixtures, New(filepath.Join(dir, e.Name())))
	}
	return fixtures, nil
}

// FindSources returns every fixture in the subtree rooted at dir, in
// lexical walk order.
func FindSources(dir string) ([]Fixture, error) {
	var fixtures []Fixture
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), SourceExt) {
			fixtures = append(fixtures, New(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fixtures, nil
}

// ListSubdirs returns the names of dir's immediate subdirectories in
// lexical order.
func ListSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// IsGradingOnly reports whether every fixture under dir lives below its
// grading/ subfolder. A folder with no fixtures at all counts as
// grading-only: there is nothing visible to grade.
func IsGradingOnly(dir string) (bool, error) {
	fixtures, err := FindSources(dir)
	if err != nil {
		return false, err
	}

	gradingPrefix := filepath.Join(dir, GradingDir) + string(filepath.Separator)
	for _, f := range fixtures {
		if !strings.HasPrefix(f.SourcePath, gradingPrefix) {
			return false, nil
		}
	}
	return true, nil
}

// ClassifyTab decides whether a rubric folder has named sub-rubrics: it
// must hold fixtures nested at least two levels down, and at least one of
// its subfolders must not be a reserved hidden/grading folder.
func ClassifyTab(dir string) (Shape, error) {
	return classify(dir, func(name string) bool {
		return name == HiddenDir || name == GradingDir
	})
}

// ClassifyContext decides whether a sub-rubric folder enumerates its
// subfolders as separate test-case groups. Only the hidden name is
// excluded at this level.
func ClassifyContext(dir string) (Shape, error) {
	return classify(dir, func(name string) bool {
		return name == HiddenDir
	})
}

func classify(dir string, reserved func(string) bool) (Shape, error) {
	nested, err := hasNestedSources(dir)
	if err != nil {
		return "", err
	}
	if !nested {
		return ShapeDummy, nil
	}

	subdirs, err := ListSubdirs(dir)
	if err != nil {
		return "", err
	}
	for _, name := range subdirs {
		if !reserved(name) {
			return ShapeNamed, nil
		}
	}
	return ShapeDummy, nil
}

// hasNestedSources reports whether any fixture lives below a subdirectory
// of dir (depth two or more).
func hasNestedSources(dir string) (bool, error) {
	subdirs, err := ListSubdirs(dir)
	if err != nil {
		return false, err
	}

	for _, name := range subdirs {
		fixtures, err := FindSources(filepath.Join(dir, name))
		if err != nil {
			return false, err
		}
		if len(fixtures) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// Title turns a folder name into a human-readable heading: separators
// become spaces and the result is capitalized.
func Title(dir string) string {
	name := filepath.Base(dir)
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")

	runes := []rune(strings.ToLower(name))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}
