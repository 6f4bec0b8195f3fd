// Package diagnose classifies raw build-tool stderr into a structured
// diagnostic. Classification is a pure text transformation: link failures
// win over compiler errors, and anything unrecognized falls back to the raw
// text so the user always sees something actionable.
package diagnose

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kamilpajak/examinator/internal/report"
	"github.com/kamilpajak/examinator/pkg/models"
)

var (
	undefinedReferencePattern = regexp.MustCompile(
		"(?m)/usr/bin/ld: .*\\n?\\w+\\.(?:h|cpp):\\([\\w+.]+\\): undefined reference to `([^']*)'")
	compileErrorPattern = regexp.MustCompile(
		`(?m)[/\w.]+:(\d+):(\d+): error: (.+)`)
)

// Classify turns build stderr and an optional exit code into exactly one
// diagnostic. It never fails: unmatched input degrades to the unclassified
// fallback carrying the raw text.
func Classify(stderr string, exitCode *int) models.Diagnostic {
	if symbols := missingReferences(stderr); len(symbols) > 0 {
		return models.Diagnostic{
			Kind:    models.DiagnosticUnresolvedSymbols,
			Symbols: symbols,
		}
	}

	if m := compileErrorPattern.FindStringSubmatch(stderr); m != nil {
		line, _ := strconv.Atoi(m[1])
		column, _ := strconv.Atoi(m[2])
		return models.Diagnostic{
			Kind:    models.DiagnosticCompileError,
			Line:    line,
			Column:  column,
			Message: m[3],
		}
	}

	return models.Diagnostic{
		Kind:     models.DiagnosticUnclassified,
		ExitCode: exitCode,
		RawText:  stderr,
	}
}

// missingReferences collects the deduplicated set of symbols named in
// linker "undefined reference" lines, sorted for stable output.
func missingReferences(stderr string) []string {
	matches := undefinedReferencePattern.FindAllStringSubmatch(stderr, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		seen[m[1]] = struct{}{}
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Report renders a diagnostic into the sink as messages and annotations.
func Report(sink report.Sink, d models.Diagnostic) {
	switch d.Kind {
	case models.DiagnosticUnresolvedSymbols:
		var b strings.Builder
		b.WriteString("Could not find the following references:\n")
		for _, s := range d.Symbols {
			fmt.Fprintf(&b, " * `%s`\n", s)
		}
		sink.Message(report.Message{
			Description: strings.TrimRight(b.String(), "\n"),
			Format:      report.FormatMarkdown,
			Severity:    report.SeverityError,
		})

	case models.DiagnosticCompileError:
		sink.Message(report.Message{
			Description: d.Message,
			Format:      report.FormatCode,
			Severity:    report.SeverityError,
		})
		sink.Annotation(report.Annotation{
			Row:  d.Line,
			Text: d.Message,
			Type: report.SeverityError,
		})

	default:
		exitCode := "unknown"
		if d.ExitCode != nil {
			exitCode = strconv.Itoa(*d.ExitCode)
		}
		description := fmt.Sprintf(
			"Failed to build solution.\nThe build tool returned exit code **%s**.\n%s",
			exitCode, BlockQuote(d.RawText))
		sink.Message(report.Message{
			Description: description,
			Format:      report.FormatMarkdown,
			Severity:    report.SeverityError,
		})
	}
}

// BlockQuote wraps text in a markdown block-quoted code fence, quoting
// every line (newlines preserved) so the original text round-trips.
func BlockQuote(text string) string {
	var b strings.Builder
	b.WriteString("> ```\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("> ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("> ```")
	return b.String()
}
