// Package pipeline runs a recorded experiment: load the manifest, fetch the
// source snapshot, build the environment descriptor, then build and run the
// image. Stages run strictly in order and the first failure ends the run.
package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/repro/internal/clock"
	"github.com/mrz1836/repro/internal/constants"
	"github.com/mrz1836/repro/internal/ctxutil"
	reproerrors "github.com/mrz1836/repro/internal/errors"
	"github.com/mrz1836/repro/internal/environment"
	"github.com/mrz1836/repro/internal/git"
	"github.com/mrz1836/repro/internal/manifest"
)

// Loader reads a manifest file.
type Loader interface {
	Load(path string) (*manifest.Manifest, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (*manifest.Manifest, error)

// Load calls f.
func (f LoaderFunc) Load(path string) (*manifest.Manifest, error) {
	return f(path)
}

// Fetcher checks out a recorded source snapshot into dest.
type Fetcher interface {
	Fetch(ctx context.Context, locator, commit, dest string) (*git.Repository, error)
}

// Builder prepares the build descriptor in dest.
type Builder interface {
	Build(ctx context.Context, m environment.CommandSource, dest string) (*environment.Environment, error)
}

// Executor builds and runs the environment's image.
type Executor interface {
	Run(ctx context.Context, env *environment.Environment, networkAccess bool) error
}

// Transition records one state change.
type Transition struct {
	From   State     `json:"from"`
	To     State     `json:"to"`
	At     time.Time `json:"at"`
	Detail string    `json:"detail,omitempty"`
}

// Result describes a finished run. Stage and Category are set only when
// State is Failed; Stage is the state the failing step was trying to reach.
type Result struct {
	RunID       string                  `json:"run_id"`
	State       State                   `json:"state"`
	Stage       State                   `json:"stage,omitempty"`
	Category    Category                `json:"category,omitempty"`
	Error       string                  `json:"error,omitempty"`
	Workdir     string                  `json:"workdir,omitempty"`
	Source      *git.Repository         `json:"-"`
	Transitions []Transition            `json:"transitions"`
	Durations   map[State]time.Duration `json:"durations_ns"`
}

// Pipeline wires the stages together. Loader and Clock default to
// manifest.Load and the system clock.
type Pipeline struct {
	Loader   Loader
	Resolver Fetcher
	Builder  Builder
	Runner   Executor
	Clock    clock.Clock

	// NetworkAccess lets the experiment container reach the network.
	NetworkAccess bool

	// KeepWorkDir leaves the working directory on disk after the run.
	KeepWorkDir bool

	// OnTransition, when set, is called after every state change.
	OnTransition func(Transition)
}

// Run executes the pipeline for the manifest at manifestPath. On failure
// both the Result (in state Failed) and the stage's error are returned.
// The working directory is removed on every return path, including panics,
// unless KeepWorkDir is set.
func (p *Pipeline) Run(ctx context.Context, manifestPath string) (*Result, error) {
	run := &run{
		p: p,
		result: &Result{
			RunID:       uuid.NewString(),
			State:       Idle,
			Transitions: []Transition{},
			Durations:   map[State]time.Duration{},
		},
	}
	logger := zerolog.Ctx(ctx).With().Str("run_id", run.result.RunID).Logger()
	ctx = logger.WithContext(ctx)
	run.mark = p.now()

	workdir, err := os.MkdirTemp("", constants.WorkDirPattern)
	if err != nil {
		return run.fail(ctx, ManifestLoaded, reproerrors.Wrap(err, "failed to create working directory"))
	}
	run.result.Workdir = workdir
	defer func() {
		if p.KeepWorkDir {
			logger.Info().Str("workdir", workdir).Msg("keeping working directory")
			return
		}
		if rmErr := os.RemoveAll(workdir); rmErr != nil {
			logger.Warn().Err(rmErr).Str("workdir", workdir).Msg("failed to remove working directory")
		}
	}()
	logger.Debug().Str("workdir", workdir).Msg("created working directory")

	m, err := p.loader().Load(manifestPath)
	if err != nil {
		return run.fail(ctx, ManifestLoaded, err)
	}
	run.advance(ctx, ManifestLoaded, manifestPath)

	src, err := m.Source()
	if err != nil {
		return run.fail(ctx, SourceFetched, err)
	}
	if err := ctxutil.Canceled(ctx); err != nil {
		return run.fail(ctx, SourceFetched, err)
	}
	repo, err := p.Resolver.Fetch(ctx, src.Repository, src.Commit, workdir)
	if err != nil {
		return run.fail(ctx, SourceFetched, err)
	}
	run.result.Source = repo
	run.advance(ctx, SourceFetched, repo.URL+"@"+repo.Commit)

	if err := ctxutil.Canceled(ctx); err != nil {
		return run.fail(ctx, EnvironmentBuilt, err)
	}
	env, err := p.Builder.Build(ctx, m, workdir)
	if err != nil {
		return run.fail(ctx, EnvironmentBuilt, err)
	}
	run.advance(ctx, EnvironmentBuilt, env.Dockerfile)

	if err := ctxutil.Canceled(ctx); err != nil {
		return run.fail(ctx, Executed, err)
	}
	if err := p.Runner.Run(ctx, env, p.NetworkAccess); err != nil {
		return run.fail(ctx, Executed, err)
	}
	run.advance(ctx, Executed, "")

	return run.result, nil
}

func (p *Pipeline) loader() Loader {
	if p.Loader == nil {
		return LoaderFunc(manifest.Load)
	}
	return p.Loader
}

func (p *Pipeline) now() time.Time {
	if p.Clock == nil {
		return time.Now()
	}
	return p.Clock.Now()
}

// run is the mutable state of one Pipeline.Run call.
type run struct {
	p      *Pipeline
	result *Result
	mark   time.Time
}

func (r *run) transition(to State, detail string) Transition {
	now := r.p.now()
	t := Transition{From: r.result.State, To: to, At: now, Detail: detail}
	r.result.Transitions = append(r.result.Transitions, t)
	r.result.Durations[to] = now.Sub(r.mark)
	r.result.State = to
	r.mark = now
	if r.p.OnTransition != nil {
		r.p.OnTransition(t)
	}
	return t
}

func (r *run) advance(ctx context.Context, to State, detail string) {
	t := r.transition(to, detail)
	zerolog.Ctx(ctx).Info().
		Stringer("from", t.From).
		Stringer("to", t.To).
		Str("detail", detail).
		Dur("elapsed", r.result.Durations[to]).
		Msg("pipeline stage completed")
}

func (r *run) fail(ctx context.Context, stage State, err error) (*Result, error) {
	r.result.Stage = stage
	r.result.Category = CategoryOf(err)
	r.result.Error = err.Error()
	r.transition(Failed, err.Error())

	zerolog.Ctx(ctx).Error().
		Err(err).
		Stringer("stage", stage).
		Stringer("category", r.result.Category).
		Msg("pipeline failed")
	return r.result, err
}
