// Package git provides Git operations for repro.
// This file provides read-only queries used to audit a working tree.
package git

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mrz1836/repro/internal/errors"
)

// IsRepository reports whether dir is inside a git working tree.
func IsRepository(ctx context.Context, dir string) bool {
	out, err := RunCommand(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Root returns the top-level directory of the working tree containing dir.
func Root(ctx context.Context, dir string) (string, error) {
	root, err := RunCommand(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %w", errors.ErrNotGitRepo, err)
	}
	return root, nil
}

// HeadCommit returns the full hash of HEAD. It fails in a repository
// without commits.
func HeadCommit(ctx context.Context, dir string) (string, error) {
	return RunCommand(ctx, dir, "rev-parse", "HEAD")
}

// RemoteURL returns the URL configured for the named remote.
func RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	return RunCommand(ctx, dir, "remote", "get-url", remote)
}

// WorkingTreeStatus returns the branch, upstream and file status of the
// working tree, including every untracked file.
func WorkingTreeStatus(ctx context.Context, dir string) (*Status, error) {
	out, err := RunCommand(ctx, dir, "status", "--porcelain", "--branch", "-uall")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return parseGitStatus(out), nil
}

// UnpushedCommits counts commits reachable from HEAD that no remote has.
// With an upstream configured the count is relative to the upstream,
// otherwise it is relative to every remote-tracking branch.
func UnpushedCommits(ctx context.Context, dir, upstream string) (int, error) {
	args := []string{"rev-list", "--count", "HEAD", "--not", "--remotes"}
	if upstream != "" {
		args = []string{"rev-list", "--count", upstream + "..HEAD"}
	}

	out, err := RunCommand(ctx, dir, args...)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", out, errors.ErrGitOperation)
	}
	return n, nil
}
