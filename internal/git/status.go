// Package git provides Git operations for repro.
// This file parses porcelain status output.
package git

import (
	"strconv"
	"strings"
)

// parseGitStatus parses the output of git status --porcelain --branch.
func parseGitStatus(output string) *Status {
	status := &Status{
		Staged:    []FileChange{},
		Unstaged:  []FileChange{},
		Untracked: []string{},
	}

	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "## ") {
			parseBranchLine(line, status)
			continue
		}
		if len(line) < 4 {
			continue
		}

		// XY PATH or XY ORIG -> PATH (for renames)
		indexStatus := line[0]
		workTreeStatus := line[1]
		path := strings.TrimSpace(line[3:])

		var oldPath string
		if before, after, found := strings.Cut(path, " -> "); found {
			oldPath = before
			path = after
		}

		if indexStatus == '?' && workTreeStatus == '?' {
			status.Untracked = append(status.Untracked, path)
			continue
		}
		if indexStatus == '!' {
			continue
		}

		if indexStatus != ' ' {
			status.Staged = append(status.Staged, FileChange{
				Path:    path,
				Status:  ChangeType(string(indexStatus)),
				OldPath: oldPath,
			})
		}
		if workTreeStatus != ' ' {
			status.Unstaged = append(status.Unstaged, FileChange{
				Path:    path,
				Status:  ChangeType(string(workTreeStatus)),
				OldPath: oldPath,
			})
		}
	}

	return status
}

// parseBranchLine parses the branch line from git status --porcelain --branch.
// Formats:
//
//	## main...origin/main [ahead 1, behind 2]
//	## main
//	## No commits yet on main
//	## HEAD (no branch)
func parseBranchLine(line string, status *Status) {
	line = strings.TrimPrefix(line, "## ")

	switch {
	case strings.HasPrefix(line, "HEAD (no branch)"):
		return
	case strings.HasPrefix(line, "No commits yet on "):
		status.Branch = strings.TrimPrefix(line, "No commits yet on ")
		return
	case strings.HasPrefix(line, "Initial commit on "):
		status.Branch = strings.TrimPrefix(line, "Initial commit on ")
		return
	}

	local, remote, found := strings.Cut(line, "...")
	status.Branch = local
	if !found {
		return
	}

	upstream, info, hasInfo := strings.Cut(remote, " [")
	status.Upstream = upstream
	if !hasInfo || !strings.HasSuffix(info, "]") {
		return
	}

	info = strings.TrimSuffix(info, "]")
	status.Ahead = parseAheadBehind(info, "ahead ")
	status.Behind = parseAheadBehind(info, "behind ")
}

// parseAheadBehind extracts the count from "ahead N" or "behind N" in the info string.
func parseAheadBehind(info, prefix string) int {
	idx := strings.Index(info, prefix)
	if idx == -1 {
		return 0
	}

	numStr := info[idx+len(prefix):]
	if before, _, found := strings.Cut(numStr, ","); found {
		numStr = before
	}

	n, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return 0
	}
	return n
}
