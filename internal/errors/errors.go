// Package errors provides centralized error handling for repro.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrManifestSyntax indicates that the manifest could not be read or is not
	// well-formed YAML with a mapping at its root.
	ErrManifestSyntax = errors.New("manifest is not well-formed")

	// ErrMissingKey indicates that a manifest path lookup hit an absent key.
	ErrMissingKey = errors.New("key not found")

	// ErrNotAMapping indicates that a manifest path lookup traversed a value
	// that is not a mapping before the path was exhausted.
	ErrNotAMapping = errors.New("value is not a mapping")

	// ErrInvalidManifestValue indicates a manifest value exists but has the wrong type.
	ErrInvalidManifestValue = errors.New("invalid manifest value")

	// ErrMissingSource indicates that the manifest does not record where the
	// source code can be fetched from (repository or commit).
	ErrMissingSource = errors.New("source metadata missing from manifest")

	// ErrSourceUnavailable indicates that every candidate URL was tried and
	// none could be cloned and checked out at the recorded revision.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMissingExecutable indicates that the manifest does not record the
	// command that ran the experiment.
	ErrMissingExecutable = errors.New("executable metadata missing from manifest")

	// ErrExternalTool indicates that the container engine exited with a nonzero
	// status while building or running the image.
	ErrExternalTool = errors.New("external tool failed")

	// ErrGitOperation indicates that a git command (clone, checkout, rev-parse, etc.)
	// failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrDescriptorNotFound indicates no dev container descriptor exists in a project tree.
	ErrDescriptorNotFound = errors.New("dev container configuration not found")

	// ErrDescriptorInvalid indicates a dev container descriptor could not be parsed
	// or does not match the descriptor schema.
	ErrDescriptorInvalid = errors.New("invalid dev container configuration")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidSource indicates an invalid source configuration value.
	ErrConfigInvalidSource = errors.New("invalid source configuration")

	// ErrConfigInvalidContainer indicates an invalid container configuration value.
	ErrConfigInvalidContainer = errors.New("invalid container configuration")

	// ErrConfigInvalidEnvironment indicates an invalid environment configuration value.
	ErrConfigInvalidEnvironment = errors.New("invalid environment configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrCommandNotConfigured indicates that a mock command was not configured in tests.
	ErrCommandNotConfigured = errors.New("command not configured")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrMeasureNotFetched indicates an audit check read a measure the
	// inspector was not asked for.
	ErrMeasureNotFetched = errors.New("measure not fetched")

	// ErrAuditFailed indicates the audit found at least one actionable item.
	ErrAuditFailed = errors.New("audit found actionable items")

	// ErrOperationCanceled indicates the user canceled an operation.
	ErrOperationCanceled = errors.New("operation canceled by user")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// This ensures a non-zero exit code while preventing duplicate error messages.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)
