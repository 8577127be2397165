package audit

import (
	"context"
)

// fakeInspector answers from a fixed table and records what was asked.
type fakeInspector struct {
	values  Measurements
	fetched [][]Measure
}

func (f *fakeInspector) Fetch(_ context.Context, measures ...Measure) Measurements {
	f.fetched = append(f.fetched, measures)
	out := make(Measurements, len(measures))
	for _, m := range measures {
		if v, ok := f.values[m]; ok {
			out[m] = v
		}
	}
	return out
}

// cleanRepo returns measurements for a clean, fully pushed repository.
func cleanRepo() Measurements {
	return Measurements{
		GitIsRepo:             {Value: true},
		GitRoot:               {Value: "/work/project"},
		GitRemoteOrigin:       {Value: "git@github.com:org/project.git"},
		GitBranch:             {Value: "main"},
		GitBranchUpstream:     {Value: "origin/main"},
		GitLastCommitHash:     {Value: "0123456789abcdef0123456789abcdef01234567"},
		GitUntrackedFiles:     {Value: 0},
		GitUncommittedChanges: {Value: 0},
		GitUnpushedChanges:    {Value: 0},
	}
}
