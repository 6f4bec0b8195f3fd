package models

// TestStatus is the status string reported by the external test tool.
type TestStatus string

const (
	StatusPass    TestStatus = "PASS"
	StatusFail    TestStatus = "FAIL"
	StatusTimeout TestStatus = "TIMEOUT"
)

// Outcome represents the result of evaluating a single fixture.
//
// Correct follows the test tool's process exit code, not the status string;
// the status only drives warnings (most notably TIMEOUT). For custom
// fixtures all stream fields stay empty.
type Outcome struct {
	Correct         bool       `json:"correct"`
	Status          TestStatus `json:"status"`
	DurationSeconds float64    `json:"duration_seconds"`
	ExpectedOutput  string     `json:"expected_output,omitempty"`
	ExpectedError   string     `json:"expected_error,omitempty"`
	GeneratedOutput string     `json:"generated_output,omitempty"`
	GeneratedError  string     `json:"generated_error,omitempty"`
}

// TimedOut reports whether the test tool flagged this run as a timeout.
func (o Outcome) TimedOut() bool {
	return o.Status == StatusTimeout
}
