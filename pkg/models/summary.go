package models

import "time"

// TabScore is the per-rubric breakdown of a graded run.
type TabScore struct {
	Tab     string `json:"tab"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
}

// Summary is the complete result of grading one submission.
type Summary struct {
	Submission string        `json:"submission"`
	Score      Counter       `json:"score"`
	Tabs       []TabScore    `json:"tabs,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	Diagnostic *Diagnostic   `json:"diagnostic,omitempty"`
}

// Accepted reports whether the submission passed every test. A submission
// that failed to build is never accepted.
func (s *Summary) Accepted() bool {
	return s.Diagnostic == nil && s.Score.Accepted()
}
