package errors

import (
	"fmt"
	"strings"
)

// PathSeparator joins manifest path segments in error messages.
const PathSeparator = "."

// LookupKind distinguishes the two ways a nested path lookup can fail.
type LookupKind int

const (
	// LookupMissingKey means the key at the end of Path is absent.
	LookupMissingKey LookupKind = iota
	// LookupNotAMapping means the value at Path is not a mapping but the
	// lookup still had keys left to consume.
	LookupNotAMapping
)

// LookupError reports a failed nested path lookup.
//
// For LookupNotAMapping, Path is the sub-path consumed before the non-mapping
// value was found. For LookupMissingKey, Path is the full attempted sub-path,
// including the missing key.
type LookupError struct {
	Kind LookupKind
	Path []string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	path := strings.Join(e.Path, PathSeparator)
	if e.Kind == LookupNotAMapping {
		if path == "" {
			return "the document root is not a mapping"
		}
		return fmt.Sprintf("the value at %s is not a mapping", path)
	}
	return fmt.Sprintf("the key %s could not be found", path)
}

// Unwrap returns the sentinel matching the lookup kind.
func (e *LookupError) Unwrap() error {
	if e.Kind == LookupNotAMapping {
		return ErrNotAMapping
	}
	return ErrMissingKey
}

// Attempt records one failed clone or checkout of a candidate URL.
type Attempt struct {
	URL string
	Err error
}

// SourceUnavailableError is returned when every candidate URL failed.
type SourceUnavailableError struct {
	Locator  string
	Commit   string
	Attempts []Attempt
}

// Error implements the error interface.
func (e *SourceUnavailableError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to clone %s and check out %s after %d attempt(s)", e.Locator, e.Commit, len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.URL, a.Err)
	}
	return b.String()
}

// Unwrap returns ErrSourceUnavailable.
func (e *SourceUnavailableError) Unwrap() error {
	return ErrSourceUnavailable
}

// ToolStep names which container engine invocation failed.
type ToolStep string

// Container engine steps.
const (
	StepBuild ToolStep = "build"
	StepRun   ToolStep = "run"
)

// ExternalToolError is returned when the container engine exits with a
// nonzero status, or cannot be started at all (ExitCode -1).
type ExternalToolError struct {
	Step     ToolStep
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface.
func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s %s exited with status %d", e.Tool, e.Step, e.ExitCode)
	if e.ExitCode < 0 && e.Err != nil {
		msg = fmt.Sprintf("%s %s could not be started: %v", e.Tool, e.Step, e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap exposes both ErrExternalTool and the underlying process error.
func (e *ExternalToolError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExternalTool}
	}
	return []error{ErrExternalTool, e.Err}
}
