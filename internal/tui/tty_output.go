package tui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrz1836/repro/internal/audit"
	reproerrors "github.com/mrz1836/repro/internal/errors"
)

// TTYOutput provides styled terminal output using Lip Gloss.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
	width  int
}

// NewTTYOutput creates a new TTYOutput with styled output.
// Respects NO_COLOR environment variable via CheckNoColor().
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()

	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
		width:  TerminalWidth(),
	}
}

// WithWidth overrides the detected terminal width.
func (o *TTYOutput) WithWidth(width int) *TTYOutput {
	o.width = width
	return o
}

// Success outputs a status line with a green ✓.
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render(SymbolOK)+" "+msg)
}

// Error outputs a status line with a red ✗. Known failures get a suggested
// action on a dim second line.
func (o *TTYOutput) Error(err error) {
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render(SymbolError)+" "+err.Error())

	if _, action := reproerrors.Actionable(err); action != "" {
		_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+action))
	}
}

// Warning outputs a status line with a yellow ⚠.
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render(SymbolWarn)+" "+msg)
}

// Info outputs an informational message with a blue ℹ.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(SymbolInfo+" "+msg))
}

// Report renders an audit report: one dotted header line per check with
// its PASS/FAIL status, one line per subcheck, then the actionable items.
func (o *TTYOutput) Report(r audit.Report) error {
	for _, check := range r.Checks {
		if _, err := fmt.Fprintln(o.w, o.checkLine(check)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		for _, sub := range check.Results {
			if _, err := fmt.Fprintln(o.w, o.subcheckLine(sub)); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}
	}

	items := r.ActionableItems()
	if len(items) == 0 {
		_, err := fmt.Fprintln(o.w, "\n"+o.styles.Success.Render("All good. Nothing left to do!"))
		return err
	}

	_, _ = fmt.Fprintln(o.w, "\n"+o.styles.Error.Render(fmt.Sprintf("%d actionable item(s)", len(items))))
	for _, hint := range items {
		_, _ = fmt.Fprintln(o.w, "\n"+o.styles.Title.Render(hint.Title))
		renderRemediation(o.w, hint.Remediation, o.width)
	}
	return nil
}

// JSON outputs an arbitrary value as formatted JSON.
func (o *TTYOutput) JSON(v any) error {
	encoder := json.NewEncoder(o.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (o *TTYOutput) checkLine(check audit.CheckResult) string {
	status := "[" + o.styles.Success.Render("PASS") + "]"
	if check.Outcome != audit.Success {
		status = "[" + o.styles.Error.Render("FAIL") + "]"
	}
	dots := max(o.width-len("[PASS]")-visibleWidth(check.Name)-3, 3)
	return fmt.Sprintf("%s %s %s", o.styles.Title.Render(check.Name), o.styles.Dim.Render(dotLeader(dots)), status)
}

func (o *TTYOutput) subcheckLine(sub audit.SubCheckResult) string {
	symbol := o.styles.Success.Render(SymbolOK)
	if sub.Outcome != audit.Success {
		symbol = o.styles.Error.Render(SymbolError)
	}
	return fmt.Sprintf("  %s %s %s", symbol, padRight(sub.Name, subcheckNameWidth), o.styles.Detail.Render(sub.Message))
}
