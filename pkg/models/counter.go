package models

// Counter accumulates correctness counts while walking the grading
// hierarchy. The zero value is the identity for Add.
type Counter struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Add returns the pointwise sum of two counters.
func (c Counter) Add(other Counter) Counter {
	return Counter{
		Correct: c.Correct + other.Correct,
		Total:   c.Total + other.Total,
	}
}

// Incorrect returns the number of failing tests, used as the tab badge.
func (c Counter) Incorrect() int {
	return c.Total - c.Correct
}

// Accepted reports whether every counted test passed.
func (c Counter) Accepted() bool {
	return c.Correct == c.Total
}
