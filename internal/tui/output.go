// Package tui renders repro's terminal output: status lines for pipeline
// stages, the audit report, and machine-readable JSON for scripts.
package tui

import (
	"io"

	"github.com/mrz1836/repro/internal/audit"
)

// Output format names accepted by NewOutput.
const (
	FormatAuto = ""
	FormatText = "text"
	FormatJSON = "json"
)

// Output provides methods for structured output to a terminal.
type Output interface {
	// Success prints an OK status line.
	Success(msg string)
	// Error prints an ERROR status line.
	Error(err error)
	// Warning prints a WARN status line.
	Warning(msg string)
	// Info prints an informational message.
	Info(msg string)
	// Report renders an audit report.
	Report(r audit.Report) error
	// JSON outputs a value as formatted JSON.
	JSON(v any) error
}

// NewOutput creates the appropriate output based on format.
// FormatAuto picks text on a terminal and JSON otherwise.
func NewOutput(w io.Writer, format string) Output {
	switch format {
	case FormatJSON:
		return NewJSONOutput(w)
	case FormatText:
		return NewTTYOutput(w)
	}
	if IsTerminal(w) {
		return NewTTYOutput(w)
	}
	return NewJSONOutput(w)
}
