package container

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Success(t *testing.T) {
	runner := &ExecRunner{Dir: t.TempDir()}

	stdout, stderr, exitCode, err := runner.Run(context.Background(), "sh", []string{"-c", "echo hello; echo oops >&2"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "hello\n", stdout)
	assert.Equal(t, "oops\n", stderr)
}

func TestExecRunner_ExitCode(t *testing.T) {
	runner := &ExecRunner{}

	_, _, exitCode, err := runner.Run(context.Background(), "sh", []string{"-c", "exit 42"}, nil)

	require.Error(t, err)
	assert.Equal(t, 42, exitCode)
}

func TestExecRunner_ArgsAreNotShellExpanded(t *testing.T) {
	runner := &ExecRunner{}

	stdout, _, _, err := runner.Run(context.Background(), "echo", []string{"$HOME", "a;b"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "$HOME a;b\n", stdout)
}

func TestExecRunner_LiveOutput(t *testing.T) {
	runner := &ExecRunner{}
	var live bytes.Buffer

	stdout, _, _, err := runner.Run(context.Background(), "echo", []string{"streamed"}, &live)

	require.NoError(t, err)
	assert.Equal(t, "streamed\n", stdout)
	assert.Equal(t, "streamed\n", live.String())
}

func TestExecRunner_NotFound(t *testing.T) {
	runner := &ExecRunner{}

	_, _, exitCode, err := runner.Run(context.Background(), "repro-no-such-binary", nil, nil)

	require.Error(t, err)
	assert.Equal(t, -1, exitCode)
}
