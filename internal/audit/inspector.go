package audit

import (
	"context"
	"strconv"
	"time"

	"github.com/mrz1836/repro/internal/devcontainer"
	"github.com/mrz1836/repro/internal/errors"
	"github.com/mrz1836/repro/internal/git"
)

// Measure names one fact about a project.
type Measure int

// Measures the inspector can provide.
const (
	GitIsRepo Measure = iota + 1
	GitRoot
	GitBranch
	GitBranchUpstream
	GitLastCommitHash
	GitRemoteOrigin
	GitUncommittedChanges
	GitUnpushedChanges
	GitUntrackedFiles
	DevContainerConfPaths
)

var measureNames = map[Measure]string{ //nolint:gochecknoglobals // lookup table
	GitIsRepo:             "git_is_repo",
	GitRoot:               "git_root",
	GitBranch:             "git_branch",
	GitBranchUpstream:     "git_branch_upstream",
	GitLastCommitHash:     "git_last_commit_hash",
	GitRemoteOrigin:       "git_remote_origin",
	GitUncommittedChanges: "git_uncommitted_changes",
	GitUnpushedChanges:    "git_unpushed_changes",
	GitUntrackedFiles:     "git_untracked_files",
	DevContainerConfPaths: "devcontainer_conf_paths",
}

// String returns the measure's name.
func (m Measure) String() string {
	if name, ok := measureNames[m]; ok {
		return name
	}
	return "measure(" + strconv.Itoa(int(m)) + ")"
}

// Measurement is the value read for a measure. Value holds a bool, string,
// int or []string depending on the measure. Err is set when the value could
// not be read.
type Measurement struct {
	Value any
	Err   error
}

// Bool returns a bool value, false otherwise.
func (m Measurement) Bool() bool {
	b, _ := m.Value.(bool)
	return b
}

// Text returns a string value, "" otherwise.
func (m Measurement) Text() string {
	s, _ := m.Value.(string)
	return s
}

// Int returns an int value, 0 otherwise.
func (m Measurement) Int() int {
	n, _ := m.Value.(int)
	return n
}

// Strings returns a []string value, nil otherwise.
func (m Measurement) Strings() []string {
	s, _ := m.Value.([]string)
	return s
}

// Measurements holds the values read by one Fetch.
type Measurements map[Measure]Measurement

// Get returns the measurement for m. A measure that was not fetched reads
// as an error.
func (ms Measurements) Get(m Measure) Measurement {
	if v, ok := ms[m]; ok {
		return v
	}
	return Measurement{Err: errors.Wrapf(errors.ErrMeasureNotFetched, "%s", m)}
}

// Inspector reads measures about a project. It never fails as a whole;
// a measure that cannot be read carries its own error.
type Inspector interface {
	Fetch(ctx context.Context, measures ...Measure) Measurements
}

// ProjectInspector reads measures from a directory with the git CLI and the
// dev container discovery rules.
type ProjectInspector struct {
	// Dir is the project directory.
	Dir string

	// Timeout bounds each git query. Zero means no limit.
	Timeout time.Duration
}

// Fetch reads the requested measures. The working tree status is read at
// most once per call.
func (p *ProjectInspector) Fetch(ctx context.Context, measures ...Measure) Measurements {
	out := make(Measurements, len(measures))

	var (
		status    *git.Status
		statusErr error
		statusSet bool
	)
	workingTree := func() (*git.Status, error) {
		if !statusSet {
			qctx, cancel := p.queryContext(ctx)
			status, statusErr = git.WorkingTreeStatus(qctx, p.Dir)
			cancel()
			statusSet = true
		}
		return status, statusErr
	}

	for _, m := range measures {
		qctx, cancel := p.queryContext(ctx)
		out[m] = p.measure(qctx, m, workingTree)
		cancel()
	}
	return out
}

func (p *ProjectInspector) measure(ctx context.Context, m Measure, workingTree func() (*git.Status, error)) Measurement {
	switch m {
	case GitIsRepo:
		return Measurement{Value: git.IsRepository(ctx, p.Dir)}
	case GitRoot:
		return measured(git.Root(ctx, p.Dir))
	case GitLastCommitHash:
		return measured(git.HeadCommit(ctx, p.Dir))
	case GitRemoteOrigin:
		return measured(git.RemoteURL(ctx, p.Dir, "origin"))
	case GitBranch, GitBranchUpstream, GitUncommittedChanges, GitUntrackedFiles, GitUnpushedChanges:
		status, err := workingTree()
		if err != nil {
			return Measurement{Err: err}
		}
		return p.statusMeasure(ctx, m, status)
	case DevContainerConfPaths:
		return Measurement{Value: devcontainer.Find(p.Dir)}
	default:
		return Measurement{Err: errors.Wrapf(errors.ErrMeasureNotFetched, "unknown measure %s", m)}
	}
}

func (p *ProjectInspector) statusMeasure(ctx context.Context, m Measure, status *git.Status) Measurement {
	switch m {
	case GitBranch:
		return Measurement{Value: status.Branch}
	case GitBranchUpstream:
		return Measurement{Value: status.Upstream}
	case GitUncommittedChanges:
		return Measurement{Value: len(status.Staged) + len(status.Unstaged)}
	case GitUntrackedFiles:
		return Measurement{Value: len(status.Untracked)}
	default:
		n, err := git.UnpushedCommits(ctx, p.Dir, status.Upstream)
		return measured(n, err)
	}
}

func (p *ProjectInspector) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.Timeout)
}

func measured[T any](v T, err error) Measurement {
	if err != nil {
		return Measurement{Err: err}
	}
	return Measurement{Value: v}
}

var _ Inspector = (*ProjectInspector)(nil)
