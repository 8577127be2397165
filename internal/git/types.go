// Package git provides Git operations for repro.
// This file defines the types returned by repository inspection.
package git

// Status represents the current state of a Git working tree.
type Status struct {
	Staged    []FileChange // Files staged for commit
	Unstaged  []FileChange // Modified but not staged
	Untracked []string     // Untracked files
	Branch    string       // Current branch name, empty when detached
	Upstream  string       // Upstream branch, empty when none is configured
	Ahead     int          // Commits ahead of upstream
	Behind    int          // Commits behind upstream
}

// FileChange represents a changed file in the working tree.
type FileChange struct {
	Path    string     // File path relative to repo root
	Status  ChangeType // Type of change (Added, Modified, Deleted, etc.)
	OldPath string     // For renamed files, the original path
}

// ChangeType represents the type of change for a file.
type ChangeType string

// Change type constants for git status.
const (
	ChangeAdded    ChangeType = "A"
	ChangeModified ChangeType = "M"
	ChangeDeleted  ChangeType = "D"
	ChangeRenamed  ChangeType = "R"
	ChangeCopied   ChangeType = "C"
	ChangeUnmerged ChangeType = "U"
)

// IsClean returns true if the working tree has no changes.
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// HasUncommittedChanges returns true if tracked files differ from HEAD,
// staged or not.
func (s *Status) HasUncommittedChanges() bool {
	return len(s.Staged) > 0 || len(s.Unstaged) > 0
}

// HasUntrackedFiles returns true if there are untracked files.
func (s *Status) HasUntrackedFiles() bool {
	return len(s.Untracked) > 0
}

// Repository is a source snapshot checked out on disk.
type Repository struct {
	// Dir is the checkout directory.
	Dir string

	// URL is the candidate URL the snapshot was cloned from.
	URL string

	// Commit is the checked-out commit. It is the full hash when git could
	// resolve HEAD, otherwise the recorded revision.
	Commit string
}
