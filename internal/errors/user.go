package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters: the first entry matched by errors.Is() wins, so the more
// specific categories come before the generic git/tool errors they may wrap.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Manifest
	// ===================
	{
		err: ErrManifestSyntax,
		info: ErrorInfo{
			Message: "The manifest file could not be read as YAML.",
			Action:  "Check that the path is correct and the file is a valid YAML document.",
		},
	},
	{
		err: ErrMissingSource,
		info: ErrorInfo{
			Message: "The manifest does not say where the code can be fetched from.",
			Action:  "Record implementation.source.repository and implementation.source.commit in the manifest.",
		},
	},
	{
		err: ErrMissingExecutable,
		info: ErrorInfo{
			Message: "The manifest does not record the command that ran the experiment.",
			Action:  "Record implementation.executable.cmd as a list of arguments in the manifest.",
		},
	},

	// ===================
	// Source & container
	// ===================
	{
		err: ErrSourceUnavailable,
		info: ErrorInfo{
			Message: "The recorded repository could not be cloned at the recorded commit.",
			Action:  "Check that the repository is publicly reachable and the commit still exists.",
		},
	},
	{
		err: ErrExternalTool,
		info: ErrorInfo{
			Message: "The container engine failed to build or run the experiment image.",
			Action:  "Check the container engine output above and that docker (or podman) is installed and running.",
		},
	},
	{
		err: ErrGitOperation,
		info: ErrorInfo{
			Message: "A git command failed.",
			Action:  "Check that git is installed and the repository is accessible.",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "This directory is not a git repository.",
			Action:  "Run 'git init' to initialize a repository.",
		},
	},
	{
		err: ErrDescriptorInvalid,
		info: ErrorInfo{
			Message: "The dev container configuration could not be parsed.",
			Action:  "Fix the syntax of devcontainer.json.",
		},
	},

	// ===================
	// Configuration & input
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "No configuration was provided.",
		},
	},
	{
		err: ErrConfigInvalidSource,
		info: ErrorInfo{
			Message: "The source configuration is invalid.",
			Action:  "Check the source section of ~/.repro/config.yaml or .repro.yaml.",
		},
	},
	{
		err: ErrConfigInvalidContainer,
		info: ErrorInfo{
			Message: "The container configuration is invalid.",
			Action:  "Check the container section of ~/.repro/config.yaml or .repro.yaml.",
		},
	},
	{
		err: ErrConfigInvalidEnvironment,
		info: ErrorInfo{
			Message: "The environment configuration is invalid.",
			Action:  "Check the environment section of ~/.repro/config.yaml or .repro.yaml.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unknown output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation canceled.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
