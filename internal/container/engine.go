package container

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/repro/internal/errors"
)

// maxStderr bounds the stderr tail kept in an ExternalToolError.
const maxStderr = 4096

// BuildOptions describes an image build.
type BuildOptions struct {
	Image      string
	ContextDir string
	Dockerfile string
}

// RunOptions describes a container run.
type RunOptions struct {
	Image string

	// Remove deletes the container when it exits.
	Remove bool

	// NetworkAccess attaches the container to the default network.
	// When false the container runs with --network none.
	NetworkAccess bool

	// Command overrides the image's CMD when non-empty.
	Command []string
}

// Engine builds and runs images.
type Engine interface {
	Build(ctx context.Context, opts BuildOptions) error
	Run(ctx context.Context, opts RunOptions) error
}

// CLIEngine implements Engine with a docker-compatible CLI.
type CLIEngine struct {
	// Binary is the engine executable, e.g. "docker" or "podman".
	Binary string

	// Runner executes the engine. Defaults to ExecRunner.
	Runner CommandRunner

	// LiveOutput receives the engine's output as it is produced. Nil
	// discards it after capture.
	LiveOutput io.Writer
}

// NewCLIEngine returns an engine for binary that streams output to liveOut.
func NewCLIEngine(binary string, liveOut io.Writer) *CLIEngine {
	return &CLIEngine{Binary: binary, Runner: &ExecRunner{}, LiveOutput: liveOut}
}

// BuildArgs returns the engine arguments for an image build.
func BuildArgs(opts BuildOptions) []string {
	return []string{"build", "-t", opts.Image, "-f", opts.Dockerfile, opts.ContextDir}
}

// RunArgs returns the engine arguments for a container run.
func RunArgs(opts RunOptions) []string {
	args := []string{"run"}
	if opts.Remove {
		args = append(args, "--rm")
	}
	if !opts.NetworkAccess {
		args = append(args, "--network", "none")
	}
	args = append(args, opts.Image)
	return append(args, opts.Command...)
}

// Build builds the image. A nonzero exit is returned as *errors.ExternalToolError.
func (e *CLIEngine) Build(ctx context.Context, opts BuildOptions) error {
	return e.invoke(ctx, errors.StepBuild, BuildArgs(opts))
}

// Run runs the image. A nonzero exit is returned as *errors.ExternalToolError.
func (e *CLIEngine) Run(ctx context.Context, opts RunOptions) error {
	return e.invoke(ctx, errors.StepRun, RunArgs(opts))
}

func (e *CLIEngine) invoke(ctx context.Context, step errors.ToolStep, args []string) error {
	runner := e.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}

	zerolog.Ctx(ctx).Debug().
		Str("tool", e.Binary).
		Str("step", string(step)).
		Strs("args", args).
		Msg("invoking container engine")

	_, stderr, exitCode, err := runner.Run(ctx, e.Binary, args, e.LiveOutput)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	return &errors.ExternalToolError{
		Step:     step,
		Tool:     e.Binary,
		ExitCode: exitCode,
		Stderr:   tail(stderr, maxStderr),
		Err:      err,
	}
}

// tail returns the last n bytes of s, starting at a line boundary when possible.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	if i := strings.IndexByte(s, '\n'); i >= 0 && i < len(s)-1 {
		s = s[i+1:]
	}
	return s
}

var _ Engine = (*CLIEngine)(nil)
