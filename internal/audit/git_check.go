package audit

import (
	"context"
	"fmt"
	"iter"
)

// GitCheck audits version control hygiene.
type GitCheck struct {
	Inspector Inspector
}

// Name implements Check.
func (c *GitCheck) Name() string {
	return "Git Repository"
}

// gitMeasures are read in a single Fetch.
var gitMeasures = []Measure{ //nolint:gochecknoglobals // fixed measure set
	GitIsRepo,
	GitRoot,
	GitRemoteOrigin,
	GitBranch,
	GitBranchUpstream,
	GitLastCommitHash,
	GitUntrackedFiles,
	GitUncommittedChanges,
	GitUnpushedChanges,
}

// Subchecks implements Check. Nothing else is inspected when the directory
// is not a repository.
func (c *GitCheck) Subchecks(ctx context.Context) iter.Seq[SubCheckResult] {
	return func(yield func(SubCheckResult) bool) {
		if !c.Inspector.Fetch(ctx, GitIsRepo).Get(GitIsRepo).Bool() {
			yield(failure("Repository", HintUseGit, "Not a git repository"))
			return
		}

		info := c.Inspector.Fetch(ctx, gitMeasures...)

		if !yield(success("Repository", info.Get(GitRoot).Text())) {
			return
		}

		origin := info.Get(GitRemoteOrigin)
		if origin.Err != nil || origin.Text() == "" {
			if !yield(failure("Remote origin", HintConfigureRemote, "No remote origin configured")) {
				return
			}
		} else if !yield(success("Remote origin", origin.Text())) {
			return
		}

		branch := orDetached(info.Get(GitBranch).Text())
		upstream := orDetached(info.Get(GitBranchUpstream).Text())
		if !yield(success("Branch", fmt.Sprintf("%s (local) -> %s (remote)", branch, upstream))) {
			return
		}

		commit := info.Get(GitLastCommitHash).Text()
		if commit == "" {
			commit = "<no commits>"
		}
		if !yield(success("Commit", commit)) {
			return
		}

		if !yield(countCheck(info.Get(GitUntrackedFiles), "Untracked files", HintTrackFiles,
			"All files are tracked by the repository",
			"Some files are not tracked by the repository nor ignored by the .gitignore")) {
			return
		}

		if !yield(countCheck(info.Get(GitUncommittedChanges), "Uncommitted changes", HintCommitChanges,
			"No uncommitted changes",
			"Some changes to tracked files have not been committed")) {
			return
		}

		yield(countCheck(info.Get(GitUnpushedChanges), "Unpushed changes", HintPushChanges,
			"Every commit that you have locally is also pushed",
			"Some commits have not been pushed to the remote"))
	}
}

// countCheck fails when the counted items exist or could not be counted.
func countCheck(m Measurement, name string, hint *Hint, okMsg, failMsg string) SubCheckResult {
	if m.Err != nil {
		return failure(name, hint, fmt.Sprintf("Could not be determined: %v", m.Err))
	}
	if n := m.Int(); n > 0 {
		return failure(name, hint, fmt.Sprintf("%s (%d)", failMsg, n))
	}
	return success(name, okMsg)
}

func orDetached(s string) string {
	if s == "" {
		return "detached"
	}
	return s
}

var _ Check = (*GitCheck)(nil)
