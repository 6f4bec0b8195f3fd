package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// TerminalSink renders the report as indented human-readable text.
type TerminalSink struct {
	w     io.Writer
	depth int

	bold   *color.Color
	dim    *color.Color
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

// NewTerminalSink creates a sink writing formatted text to w. Color output
// follows the package-level color settings; callers disable it for
// non-terminal writers.
func NewTerminalSink(w io.Writer) *TerminalSink {
	return &TerminalSink{
		w:      w,
		bold:   color.New(color.Bold),
		dim:    color.New(color.FgHiBlack),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
	}
}

func (s *TerminalSink) indent() string {
	return strings.Repeat("  ", s.depth)
}

func (s *TerminalSink) OpenJudgement() {}

func (s *TerminalSink) CloseJudgement(accepted bool) {
	fmt.Fprintln(s.w)
	if accepted {
		_, _ = s.green.Fprintln(s.w, "Submission accepted")
	} else {
		_, _ = s.red.Fprintln(s.w, "Submission rejected")
	}
}

func (s *TerminalSink) OpenTab(title string) {
	_, _ = s.bold.Fprintf(s.w, "%s== %s ==\n", s.indent(), title)
	s.depth++
}

func (s *TerminalSink) CloseTab(badgeCount int) {
	s.depth--
	if badgeCount > 0 {
		_, _ = s.red.Fprintf(s.w, "%s%d failing\n", s.indent()+"  ", badgeCount)
	}
}

func (s *TerminalSink) OpenContext(description string) {
	if description != "" {
		_, _ = s.bold.Fprintf(s.w, "%s%s\n", s.indent(), stripMarkdownHeading(description))
	}
	s.depth++
}

func (s *TerminalSink) CloseContext() {
	s.depth--
}

func (s *TerminalSink) OpenTestCase(description string) {
	if description != "" {
		fmt.Fprintf(s.w, "%s%s\n", s.indent(), stripMarkdownHeading(description))
	}
	s.depth++
}

func (s *TerminalSink) CloseTestCase(accepted bool) {
	s.depth--
}

func (s *TerminalSink) OpenTest(info TestInfo) {
	// Only the first line of the description is useful on a terminal; the
	// rest is the embedded source listing.
	first, _, _ := strings.Cut(info.Description, "\n")
	fmt.Fprintf(s.w, "%s%s\n", s.indent(), strings.TrimSpace(first))
	s.depth++
}

func (s *TerminalSink) CloseTest(result TestResult) {
	s.depth--
	if result.Correct {
		_, _ = s.green.Fprintf(s.w, "%s  correct\n", s.indent())
	} else {
		_, _ = s.red.Fprintf(s.w, "%s  wrong\n", s.indent())
	}
}

func (s *TerminalSink) Message(msg Message) {
	c := s.dim
	if msg.Severity == SeverityError {
		c = s.yellow
	}
	for _, line := range strings.Split(strings.TrimRight(msg.Description, "\n"), "\n") {
		_, _ = c.Fprintf(s.w, "%s%s\n", s.indent(), line)
	}
}

func (s *TerminalSink) Annotation(ann Annotation) {
	_, _ = s.yellow.Fprintf(s.w, "%sline %d: %s\n", s.indent(), ann.Row, ann.Text)
}

func stripMarkdownHeading(description string) string {
	return strings.TrimSpace(strings.TrimLeft(description, "# "))
}
