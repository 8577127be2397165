// Package audit inspects a local project for reproducibility readiness.
//
// An audit is a list of independent Checks. Each Check yields an ordered,
// lazily produced sequence of subcheck results; a failing subcheck is data,
// never an error, so one failure never stops the remaining subchecks or
// Checks from being evaluated.
package audit

import (
	"context"
	"fmt"
	"iter"
)

// Outcome is the result of a subcheck or a whole Check.
type Outcome int

// Outcomes. The zero value is invalid.
const (
	Success Outcome = iota + 1
	Fail
)

// String returns the display form of the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "SUCCESS"
	case Fail:
		return "FAIL"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SUCCESS":
		*o = Success
	case "FAIL":
		*o = Fail
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// Hint is a remediation item surfaced for a failing subcheck. Remediation
// is markdown.
type Hint struct {
	Title       string `json:"title"`
	Remediation string `json:"remediation"`
}

// SubCheckResult is one line of a Check's output. A nil Hint means no
// remediation item is surfaced, even when the outcome is Fail.
type SubCheckResult struct {
	Name    string  `json:"name"`
	Hint    *Hint   `json:"hint,omitempty"`
	Message string  `json:"message"`
	Outcome Outcome `json:"outcome"`
}

// CheckResult is a fully evaluated Check.
type CheckResult struct {
	Name    string           `json:"name"`
	Results []SubCheckResult `json:"results"`
	Outcome Outcome          `json:"outcome"`
}

// Check is an audit capability. Subchecks are produced lazily in a fixed
// order; a Check may stop early when a prerequisite fails.
type Check interface {
	Name() string
	Subchecks(ctx context.Context) iter.Seq[SubCheckResult]
}

// Evaluate materializes every subcheck of c. The outcome is Success iff
// every subcheck succeeded.
func Evaluate(ctx context.Context, c Check) CheckResult {
	result := CheckResult{Name: c.Name(), Results: []SubCheckResult{}, Outcome: Success}
	for sub := range c.Subchecks(ctx) {
		result.Results = append(result.Results, sub)
		if sub.Outcome != Success {
			result.Outcome = Fail
		}
	}
	return result
}

// success and failure build subcheck results.
func success(name, message string) SubCheckResult {
	return SubCheckResult{Name: name, Message: message, Outcome: Success}
}

func failure(name string, hint *Hint, message string) SubCheckResult {
	return SubCheckResult{Name: name, Hint: hint, Message: message, Outcome: Fail}
}
