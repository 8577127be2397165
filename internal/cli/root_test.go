package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/repro/internal/errors"
)

func TestRootCmd_Help(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, testDeps(&fakeEngine{}), "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "repro")
	assert.Contains(t, stdout, "check")
	assert.Contains(t, stdout, "reproduce")
	assert.Contains(t, stdout, "--output")
	assert.Contains(t, stdout, "--verbose")
	assert.Contains(t, stdout, "--quiet")
}

func TestRootCmd_Version(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{"full", BuildInfo{Version: "1.0.0", Commit: "abc1234", Date: "2026-01-01"}, "1.0.0 (commit: abc1234, built: 2026-01-01)"},
		{"empty", BuildInfo{}, "dev (commit: none, built: unknown)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatVersion(tc.info))
		})
	}
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, testDeps(&fakeEngine{}), "check", "--output", "yaml")
	require.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInternal, ExitCodeForError(err))
}

func TestRootCmd_VerboseQuietExclusive(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, testDeps(&fakeEngine{}), "check", "--verbose", "--quiet")
	require.Error(t, err)
	assert.Equal(t, ExitInternal, ExitCodeForError(err))
}

func TestIsReported(t *testing.T) {
	assert.True(t, isReported(errors.ErrAuditFailed))
	assert.True(t, isReported(errors.Wrap(errors.ErrJSONErrorOutput, "x")))
	assert.False(t, isReported(errors.ErrManifestSyntax))
}
