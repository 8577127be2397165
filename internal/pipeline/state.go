package pipeline

import (
	"errors"
	"fmt"

	reproerrors "github.com/mrz1836/repro/internal/errors"
)

// State is a pipeline state. Stages run in the order of the constants;
// Failed is terminal.
type State int

// Pipeline states.
const (
	Idle State = iota
	ManifestLoaded
	SourceFetched
	EnvironmentBuilt
	Executed
	Failed
)

var stateNames = map[State]string{ //nolint:gochecknoglobals // lookup table
	Idle:             "idle",
	ManifestLoaded:   "manifest_loaded",
	SourceFetched:    "source_fetched",
	EnvironmentBuilt: "environment_built",
	Executed:         "executed",
	Failed:           "failed",
}

// String returns the snake_case state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether no further transition can happen.
func (s State) IsTerminal() bool {
	return s == Executed || s == Failed
}

// Category classifies a pipeline failure.
type Category int

// Failure categories. CategoryNone means the pipeline did not fail.
const (
	CategoryNone Category = iota
	CategoryManifestSyntax
	CategoryMissingSource
	CategorySourceUnavailable
	CategoryMissingExecutable
	CategoryExternalTool
	CategoryInternal
)

var categoryNames = map[Category]string{ //nolint:gochecknoglobals // lookup table
	CategoryNone:              "none",
	CategoryManifestSyntax:    "manifest_syntax",
	CategoryMissingSource:     "missing_source",
	CategorySourceUnavailable: "source_unavailable",
	CategoryMissingExecutable: "missing_executable",
	CategoryExternalTool:      "external_tool",
	CategoryInternal:          "internal",
}

// String returns the snake_case category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CategoryOf classifies err. Errors outside the known categories, including
// cancellation, are CategoryInternal.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, reproerrors.ErrManifestSyntax):
		return CategoryManifestSyntax
	case errors.Is(err, reproerrors.ErrMissingSource):
		return CategoryMissingSource
	case errors.Is(err, reproerrors.ErrSourceUnavailable):
		return CategorySourceUnavailable
	case errors.Is(err, reproerrors.ErrMissingExecutable):
		return CategoryMissingExecutable
	case errors.Is(err, reproerrors.ErrExternalTool):
		return CategoryExternalTool
	default:
		return CategoryInternal
	}
}
