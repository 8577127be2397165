package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mrz1836/repro/internal/clock"
	"github.com/mrz1836/repro/internal/config"
	"github.com/mrz1836/repro/internal/environment"
	reproerrors "github.com/mrz1836/repro/internal/errors"
	"github.com/mrz1836/repro/internal/git"
	"github.com/mrz1836/repro/internal/manifest"
	"github.com/mrz1836/repro/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const fullManifest = `
implementation:
  source:
    repository: git@github.com:org/repo.git
    commit: 0123abc
  executable:
    cmd: [python3, main.py]
`

const noExecutableManifest = `
implementation:
  source:
    repository: https://example.com/org/repo.git
    commit: 0123abc
`

const noSourceManifest = `
implementation:
  executable:
    cmd: [python3, main.py]
`

// sshRefusingCloner fails every clone that is not over HTTPS.
type sshRefusingCloner struct {
	cloned []string
}

func (c *sshRefusingCloner) Clone(_ context.Context, url, dest string) error {
	c.cloned = append(c.cloned, url)
	if !strings.HasPrefix(url, "https://") {
		return testutil.ErrMockPermissionDenied
	}
	return os.WriteFile(filepath.Join(dest, "main.py"), []byte("print('ok')\n"), 0o600)
}

func (c *sshRefusingCloner) Checkout(_ context.Context, _, _ string) error {
	return nil
}

// recordingExecutor records the environments it was asked to run.
type recordingExecutor struct {
	envs    []*environment.Environment
	network []bool
	err     error
	panics  bool
}

func (r *recordingExecutor) Run(_ context.Context, env *environment.Environment, networkAccess bool) error {
	if r.panics {
		panic("engine exploded")
	}
	r.envs = append(r.envs, env)
	r.network = append(r.network, networkAccess)
	return r.err
}

func parseLoader(doc string) Loader {
	return LoaderFunc(func(string) (*manifest.Manifest, error) {
		return manifest.Parse([]byte(doc))
	})
}

func newTestPipeline(t *testing.T, doc string, exec *recordingExecutor) (*Pipeline, *sshRefusingCloner) {
	t.Helper()
	t.Setenv("TMPDIR", t.TempDir())

	cloner := &sshRefusingCloner{}
	return &Pipeline{
		Loader:        parseLoader(doc),
		Resolver:      &git.Resolver{Cloner: cloner},
		Builder:       environment.NewBuilder(config.DefaultConfig().Environment),
		Runner:        exec,
		Clock:         clock.Ticking(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), time.Second),
		NetworkAccess: true,
	}, cloner
}

func workDirs(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "repro-*"))
	require.NoError(t, err)
	return matches
}

func TestRun_SuccessWithHTTPSFallback(t *testing.T) {
	exec := &recordingExecutor{}
	p, cloner := newTestPipeline(t, fullManifest, exec)

	var seen []Transition
	p.OnTransition = func(tr Transition) { seen = append(seen, tr) }

	result, err := p.Run(context.Background(), "manifest.yaml")
	require.NoError(t, err)

	assert.Equal(t, Executed, result.State)
	assert.Equal(t, CategoryNone, result.Category)
	assert.Empty(t, result.Error)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, []string{"git@github.com:org/repo.git", "https://github.com/org/repo.git"}, cloner.cloned)
	require.NotNil(t, result.Source)
	assert.Equal(t, "https://github.com/org/repo.git", result.Source.URL)

	require.Len(t, result.Transitions, 4)
	assert.Equal(t, seen, result.Transitions)
	want := []State{ManifestLoaded, SourceFetched, EnvironmentBuilt, Executed}
	from := Idle
	for i, tr := range result.Transitions {
		assert.Equal(t, from, tr.From)
		assert.Equal(t, want[i], tr.To)
		assert.Equal(t, time.Second, result.Durations[tr.To])
		from = tr.To
	}

	require.Len(t, exec.envs, 1)
	assert.True(t, exec.envs[0].Synthesized)
	assert.Equal(t, []string{"python3", "main.py"}, exec.envs[0].Command)
	assert.Equal(t, []bool{true}, exec.network)

	assert.Empty(t, workDirs(t), "working directory must be removed")
}

func TestRun_MissingExecutableStopsBeforeRunner(t *testing.T) {
	exec := &recordingExecutor{}
	p, _ := newTestPipeline(t, noExecutableManifest, exec)

	result, err := p.Run(context.Background(), "manifest.yaml")
	require.ErrorIs(t, err, reproerrors.ErrMissingExecutable)

	assert.Equal(t, Failed, result.State)
	assert.Equal(t, EnvironmentBuilt, result.Stage)
	assert.Equal(t, CategoryMissingExecutable, result.Category)
	assert.Contains(t, result.Error, "executable")
	assert.Empty(t, exec.envs, "runner must not be invoked")

	last := result.Transitions[len(result.Transitions)-1]
	assert.Equal(t, SourceFetched, last.From)
	assert.Equal(t, Failed, last.To)

	assert.Empty(t, workDirs(t))
}

func TestRun_FailureCategories(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		cloner    git.Cloner
		execErr   error
		wantStage State
		wantCat   Category
		wantErr   error
	}{
		{
			name:      "manifest syntax",
			doc:       "implementation: [unterminated",
			wantStage: ManifestLoaded,
			wantCat:   CategoryManifestSyntax,
			wantErr:   reproerrors.ErrManifestSyntax,
		},
		{
			name:      "missing source",
			doc:       noSourceManifest,
			wantStage: SourceFetched,
			wantCat:   CategoryMissingSource,
			wantErr:   reproerrors.ErrMissingSource,
		},
		{
			name:      "source unavailable",
			doc:       noExecutableManifest,
			cloner:    failingCloner{},
			wantStage: SourceFetched,
			wantCat:   CategorySourceUnavailable,
			wantErr:   reproerrors.ErrSourceUnavailable,
		},
		{
			name: "external tool",
			doc:  fullManifest,
			execErr: &reproerrors.ExternalToolError{
				Step: reproerrors.StepBuild, Tool: "docker", ExitCode: 1,
			},
			wantStage: Executed,
			wantCat:   CategoryExternalTool,
			wantErr:   reproerrors.ErrExternalTool,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exec := &recordingExecutor{err: tc.execErr}
			p, _ := newTestPipeline(t, tc.doc, exec)
			if tc.cloner != nil {
				p.Resolver = &git.Resolver{Cloner: tc.cloner}
			}

			result, err := p.Run(context.Background(), "manifest.yaml")
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, Failed, result.State)
			assert.Equal(t, tc.wantStage, result.Stage)
			assert.Equal(t, tc.wantCat, result.Category)
			assert.Equal(t, tc.wantCat, CategoryOf(err))
			assert.Empty(t, workDirs(t))
		})
	}
}

// failingCloner refuses every candidate.
type failingCloner struct{}

func (failingCloner) Clone(context.Context, string, string) error {
	return testutil.ErrMockCloneFailed
}

func (failingCloner) Checkout(context.Context, string, string) error {
	return nil
}

func TestRun_RemovesWorkDirOnPanic(t *testing.T) {
	exec := &recordingExecutor{panics: true}
	p, _ := newTestPipeline(t, fullManifest, exec)

	assert.PanicsWithValue(t, "engine exploded", func() {
		_, _ = p.Run(context.Background(), "manifest.yaml")
	})
	assert.Empty(t, workDirs(t))
}

func TestRun_KeepWorkDir(t *testing.T) {
	exec := &recordingExecutor{}
	p, _ := newTestPipeline(t, fullManifest, exec)
	p.KeepWorkDir = true
	p.NetworkAccess = false

	result, err := p.Run(context.Background(), "manifest.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{result.Workdir}, workDirs(t))
	assert.FileExists(t, filepath.Join(result.Workdir, "main.py"))
	assert.FileExists(t, filepath.Join(result.Workdir, ".devcontainer", "Dockerfile"))
	assert.Equal(t, []bool{false}, exec.network)
}

func TestRun_LoadsManifestFromDisk(t *testing.T) {
	exec := &recordingExecutor{}
	p, _ := newTestPipeline(t, "", exec)
	p.Loader = nil

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullManifest), 0o600))

	result, err := p.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, Executed, result.State)
	assert.Equal(t, path, result.Transitions[0].Detail)
}

func TestRun_Canceled(t *testing.T) {
	exec := &recordingExecutor{}
	p, _ := newTestPipeline(t, fullManifest, exec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := p.Run(ctx, "manifest.yaml")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Failed, result.State)
	assert.Equal(t, SourceFetched, result.Stage)
	assert.Equal(t, CategoryInternal, result.Category)
	assert.Empty(t, exec.envs)
}

func TestRun_CanceledBetweenStages(t *testing.T) {
	exec := &recordingExecutor{}
	p, _ := newTestPipeline(t, fullManifest, exec)

	errOperator := reproerrors.ErrOperationCanceled
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	p.OnTransition = func(tr Transition) {
		if tr.To == SourceFetched {
			cancel(errOperator)
		}
	}

	result, err := p.Run(ctx, "manifest.yaml")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, errOperator)
	assert.Equal(t, EnvironmentBuilt, result.Stage)
	assert.Empty(t, exec.envs)
}
