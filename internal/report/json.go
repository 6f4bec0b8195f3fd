package report

import (
	"encoding/json"
	"io"
)

// JSONSink streams the report as JSON lines, one command per line, in the
// partial-output style grading frontends consume. Encoding errors are
// sticky: the first one is kept and later writes become no-ops.
type JSONSink struct {
	enc *json.Encoder
	err error
}

// NewJSONSink creates a sink writing JSON lines to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Err returns the first encoding error, if any.
func (s *JSONSink) Err() error {
	return s.err
}

func (s *JSONSink) emit(v any) {
	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(v)
}

type jsonCommand struct {
	Command     string   `json:"command"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Format      Format   `json:"format,omitempty"`
	Severity    Severity `json:"severity,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Generated   string   `json:"generated,omitempty"`
	Correct     *bool    `json:"correct,omitempty"`
	Accepted    *bool    `json:"accepted,omitempty"`
	BadgeCount  *int     `json:"badge_count,omitempty"`
	Row         *int     `json:"row,omitempty"`
}

func (s *JSONSink) OpenJudgement() {
	s.emit(jsonCommand{Command: "start-judgement"})
}

func (s *JSONSink) CloseJudgement(accepted bool) {
	s.emit(jsonCommand{Command: "close-judgement", Accepted: &accepted})
}

func (s *JSONSink) OpenTab(title string) {
	s.emit(jsonCommand{Command: "start-tab", Title: title})
}

func (s *JSONSink) CloseTab(badgeCount int) {
	s.emit(jsonCommand{Command: "close-tab", BadgeCount: &badgeCount})
}

func (s *JSONSink) OpenContext(description string) {
	s.emit(jsonCommand{Command: "start-context", Description: description, Format: FormatMarkdown})
}

func (s *JSONSink) CloseContext() {
	s.emit(jsonCommand{Command: "close-context"})
}

func (s *JSONSink) OpenTestCase(description string) {
	s.emit(jsonCommand{Command: "start-testcase", Description: description, Format: FormatMarkdown})
}

func (s *JSONSink) CloseTestCase(accepted bool) {
	s.emit(jsonCommand{Command: "close-testcase", Accepted: &accepted})
}

func (s *JSONSink) OpenTest(info TestInfo) {
	s.emit(jsonCommand{Command: "start-test", Description: info.Description, Format: info.Format, Expected: info.Expected})
}

func (s *JSONSink) CloseTest(result TestResult) {
	s.emit(jsonCommand{Command: "close-test", Generated: result.Generated, Correct: &result.Correct})
}

func (s *JSONSink) Message(msg Message) {
	s.emit(jsonCommand{Command: "append-message", Description: msg.Description, Format: msg.Format, Severity: msg.Severity})
}

func (s *JSONSink) Annotation(ann Annotation) {
	s.emit(jsonCommand{Command: "annotate-code", Row: &ann.Row, Description: ann.Text, Severity: ann.Type})
}
