package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// Report is the outcome of an audit run.
type Report struct {
	Checks []CheckResult `json:"checks"`
	Hints  []Hint        `json:"actionable_items"`
}

// Run evaluates every check in order and collects the hint of every failing
// subcheck. Checks are independent; a failing Check does not stop the next.
func Run(ctx context.Context, checks ...Check) Report {
	logger := zerolog.Ctx(ctx)
	report := Report{Checks: make([]CheckResult, 0, len(checks)), Hints: []Hint{}}

	for _, c := range checks {
		result := Evaluate(ctx, c)
		logger.Debug().
			Str("check", result.Name).
			Stringer("outcome", result.Outcome).
			Int("subchecks", len(result.Results)).
			Msg("check evaluated")

		report.Checks = append(report.Checks, result)
		for _, sub := range result.Results {
			if sub.Outcome == Fail && sub.Hint != nil {
				report.Hints = append(report.Hints, *sub.Hint)
			}
		}
	}
	return report
}

// ActionableItems returns the collected hints in the order they were found.
func (r Report) ActionableItems() []Hint {
	return r.Hints
}

// ExitCode is 0 when there is nothing to act on, 1 otherwise.
func (r Report) ExitCode() int {
	if len(r.Hints) == 0 {
		return 0
	}
	return 1
}
