// Package container builds and runs experiment images with a container
// engine CLI (docker or podman).
//
// Engine invocations are executed directly with an argv slice, never through
// a shell, so recorded commands and paths cannot be reinterpreted.
package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// CommandRunner executes a program and reports its captured output and exit
// code. It allows tests to inject fakes.
type CommandRunner interface {
	// Run executes name with args. When liveOut is non-nil, stdout and stderr
	// are streamed to it while also being captured. exitCode is -1 when the
	// program could not be started.
	Run(ctx context.Context, name string, args []string, liveOut io.Writer) (stdout, stderr string, exitCode int, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Run executes the program.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- argv is built by the engine, no shell involved
	cmd.Dir = r.Dir

	var outBuf, errBuf bytes.Buffer
	if liveOut != nil {
		cmd.Stdout = io.MultiWriter(&outBuf, liveOut)
		cmd.Stderr = io.MultiWriter(&errBuf, liveOut)
	} else {
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf
	}

	err = cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return stdout, stderr, exitCode, err
}

var _ CommandRunner = (*ExecRunner)(nil)
