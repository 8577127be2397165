// Package testutil provides testing utilities for repro.
//
// This package contains mock errors and fixture helpers used across test
// files. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockCloneFailed simulates an unreachable repository.
	ErrMockCloneFailed = errors.New("could not read from remote repository")

	// ErrMockPermissionDenied simulates an SSH key rejected by the host.
	ErrMockPermissionDenied = errors.New("permission denied (publickey)")

	// ErrMockEngineFailed simulates a container engine that cannot be reached.
	ErrMockEngineFailed = errors.New("cannot connect to the container daemon")
)
