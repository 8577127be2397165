package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/mrz1836/repro/internal/container"
)

// fakeEngine records the container steps it was asked to perform.
type fakeEngine struct {
	builds []container.BuildOptions
	runs   []container.RunOptions
	err    error
}

func (f *fakeEngine) Build(_ context.Context, opts container.BuildOptions) error {
	f.builds = append(f.builds, opts)
	return f.err
}

func (f *fakeEngine) Run(_ context.Context, opts container.RunOptions) error {
	f.runs = append(f.runs, opts)
	return f.err
}

// testDeps returns deps that never touch the terminal or a real engine.
func testDeps(engine *fakeEngine) *commandDeps {
	return &commandDeps{
		newEngine:   func(string, io.Writer) container.Engine { return engine },
		interactive: func() bool { return false },
		confirm: func(string, string) (bool, error) {
			panic("confirm must not be called")
		},
	}
}

// isolate keeps config and log files of a test inside temporary directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("REPRO_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(CloseLogFile)
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, deps *commandDeps, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmdWithDeps(&GlobalFlags{}, BuildInfo{Version: "test"}, deps)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
