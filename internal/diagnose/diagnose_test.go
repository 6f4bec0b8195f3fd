package diagnose

import (
	"strings"
	"testing"

	"github.com/kamilpajak/examinator/internal/report"
	"github.com/kamilpajak/examinator/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkerError = "/usr/bin/ld: /tmp/ccg6qbgQ.o: in function `main':\n" +
	"main.cpp:(.text+0x1a): undefined reference to `parse_input'\n" +
	"/usr/bin/ld: /tmp/ccg6qbgQ.o: in function `main':\n" +
	"main.cpp:(.text+0x2b): undefined reference to `print_result'\n" +
	"collect2: error: ld returned 1 exit status\n"

func TestClassifyUndefinedReferences(t *testing.T) {
	d := Classify(linkerError, nil)

	assert.Equal(t, models.DiagnosticUnresolvedSymbols, d.Kind)
	assert.Equal(t, []string{"parse_input", "print_result"}, d.Symbols)
}

func TestClassifyDeduplicatesReferences(t *testing.T) {
	repeated := linkerError + linkerError
	d := Classify(repeated, nil)

	assert.Equal(t, []string{"parse_input", "print_result"}, d.Symbols)
}

func TestClassifyLinkerErrorWinsOverCompileError(t *testing.T) {
	// A compiler-error-shaped line alongside undefined references must not
	// change the verdict: link failures take priority.
	mixed := "src/main.c:3:5: error: something else\n" + linkerError
	d := Classify(mixed, nil)

	assert.Equal(t, models.DiagnosticUnresolvedSymbols, d.Kind)
}

func TestClassifyCompileError(t *testing.T) {
	stderr := "/submission/src/main.c:12:34: error: expected ';' before '}' token\n" +
		"   12 |     return 0\n"

	d := Classify(stderr, nil)

	assert.Equal(t, models.DiagnosticCompileError, d.Kind)
	assert.Equal(t, 12, d.Line)
	assert.Equal(t, 34, d.Column)
	assert.Equal(t, "expected ';' before '}' token", d.Message)
}

func TestClassifyCompileErrorFirstMatchOnly(t *testing.T) {
	stderr := "main.c:1:2: error: first\nmain.c:3:4: error: second\n"

	d := Classify(stderr, nil)

	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 2, d.Column)
	assert.Equal(t, "first", d.Message)
}

func TestClassifyFallback(t *testing.T) {
	exitCode := 2
	stderr := "make: *** No targets specified and no makefile found.  Stop."

	d := Classify(stderr, &exitCode)

	assert.Equal(t, models.DiagnosticUnclassified, d.Kind)
	require.NotNil(t, d.ExitCode)
	assert.Equal(t, 2, *d.ExitCode)
	assert.Equal(t, stderr, d.RawText)
}

func TestBlockQuoteRoundTrips(t *testing.T) {
	texts := []string{
		"single line",
		"two\nlines",
		"trailing newline\n",
		"",
		"inner\n\nblank",
	}

	for _, text := range texts {
		quoted := BlockQuote(text)

		lines := strings.Split(quoted, "\n")
		require.Equal(t, "> ```", lines[0])
		require.Equal(t, "> ```", lines[len(lines)-1])

		var restored []string
		for _, line := range lines[1 : len(lines)-1] {
			restored = append(restored, strings.TrimPrefix(line, "> "))
		}
		assert.Equal(t, text, strings.Join(restored, "\n"), "round trip of %q", text)
	}
}

// recordingSink captures emitted messages and annotations for assertions.
type recordingSink struct {
	report.Sink
	messages    []report.Message
	annotations []report.Annotation
}

func (s *recordingSink) Message(msg report.Message) { s.messages = append(s.messages, msg) }
func (s *recordingSink) Annotation(ann report.Annotation) {
	s.annotations = append(s.annotations, ann)
}

func TestReportUnresolvedSymbols(t *testing.T) {
	sink := &recordingSink{}
	Report(sink, models.Diagnostic{
		Kind:    models.DiagnosticUnresolvedSymbols,
		Symbols: []string{"foo", "bar"},
	})

	require.Len(t, sink.messages, 1)
	msg := sink.messages[0]
	assert.Equal(t, report.FormatMarkdown, msg.Format)
	assert.Equal(t, report.SeverityError, msg.Severity)
	assert.Contains(t, msg.Description, "Could not find the following references:")
	assert.Contains(t, msg.Description, " * `foo`")
	assert.Contains(t, msg.Description, " * `bar`")
}

func TestReportCompileError(t *testing.T) {
	sink := &recordingSink{}
	Report(sink, models.Diagnostic{
		Kind:    models.DiagnosticCompileError,
		Line:    7,
		Column:  3,
		Message: "unknown type name 'strng'",
	})

	require.Len(t, sink.messages, 1)
	assert.Equal(t, report.FormatCode, sink.messages[0].Format)
	assert.Equal(t, "unknown type name 'strng'", sink.messages[0].Description)

	require.Len(t, sink.annotations, 1)
	assert.Equal(t, 7, sink.annotations[0].Row)
	assert.Equal(t, "unknown type name 'strng'", sink.annotations[0].Text)
}

func TestReportFallback(t *testing.T) {
	exitCode := 1
	sink := &recordingSink{}
	Report(sink, models.Diagnostic{
		Kind:     models.DiagnosticUnclassified,
		ExitCode: &exitCode,
		RawText:  "strange output",
	})

	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0].Description, "exit code **1**")
	assert.Contains(t, sink.messages[0].Description, "> strange output")
}
