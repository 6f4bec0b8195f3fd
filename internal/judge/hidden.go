package judge

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kamilpajak/examinator/internal/fixture"
	"github.com/kamilpajak/examinator/pkg/models"
)

// runHidden batch-runs every fixture under dir without per-test reporting
// and emits a single summary node with a proportion bar.
func (j *Judge) runHidden(ctx context.Context, dir string) (models.Counter, error) {
	fixtures, err := fixture.FindSources(dir)
	if err != nil {
		return models.Counter{}, err
	}

	var res models.Counter
	for _, fx := range fixtures {
		correct, cerr := j.evaluateCorrectness(ctx, fx)
		if cerr != nil {
			return res, cerr
		}
		res.Total++
		if correct {
			res.Correct++
		}
	}

	description := fmt.Sprintf("##### Hidden tests: %s %d/%d correct",
		SuccessBar(res.Correct, res.Total, j.barWidth), res.Correct, res.Total)
	j.sink.OpenTestCase(description)
	j.sink.CloseTestCase(res.Accepted())

	return res, nil
}

// SuccessBar renders a fixed-width proportion bar: floor(rate*width) filled
// cells, the remainder empty. An empty batch renders as fully filled.
func SuccessBar(correct, total, width int) string {
	rate := 1.0
	if total > 0 {
		rate = float64(correct) / float64(total)
	}
	filled := int(math.Floor(rate * float64(width)))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
