// Package report defines the nested scoped-emission protocol used to render
// grading results. Nodes (Judgement > Tab > Context > TestCase > Test) are
// always opened and closed in strict tree order; callers close via defer so
// a node is closed even when evaluating its children fails.
package report

// Format tags how a message body should be rendered.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatCode     Format = "code"
)

// Severity tags how prominently a message or annotation is shown.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityInfo  Severity = "info"
)

// Message is free-form text attached to the currently open node.
type Message struct {
	Description string
	Format      Format
	Severity    Severity
}

// Annotation marks a source line inside the currently open node.
type Annotation struct {
	Row  int
	Text string
	Type Severity
}

// TestInfo describes a test leaf when it is opened.
type TestInfo struct {
	Description string
	Format      Format
	Expected    string
}

// TestResult completes a test leaf when it is closed.
type TestResult struct {
	Generated string
	Correct   bool
}

// Sink receives the nested report stream. Implementations must tolerate
// empty descriptions (dummy contexts render no heading).
type Sink interface {
	OpenJudgement()
	CloseJudgement(accepted bool)

	OpenTab(title string)
	CloseTab(badgeCount int)

	OpenContext(description string)
	CloseContext()

	OpenTestCase(description string)
	CloseTestCase(accepted bool)

	OpenTest(info TestInfo)
	CloseTest(result TestResult)

	Message(msg Message)
	Annotation(ann Annotation)
}
