package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/repro/internal/devcontainer"
	"github.com/mrz1836/repro/internal/errors"
)

func TestRenderDockerfile(t *testing.T) {
	tests := []struct {
		name string
		spec DockerfileSpec
		want string
	}{
		{
			name: "minimal",
			spec: DockerfileSpec{BaseImage: "alpine", Command: []string{"./run.sh"}},
			want: "FROM alpine\n\nWORKDIR /app\n\nCOPY . .\n\nCMD [\"./run.sh\"]\n",
		},
		{
			name: "blank setup steps are skipped",
			spec: DockerfileSpec{
				BaseImage:  "alpine",
				SetupSteps: []string{"", "apk add git"},
				PostCreate: devcontainer.ShellCommand("make"),
				Command:    []string{"sh", "-c", "echo a && echo <b>"},
			},
			want: "FROM alpine\n\nRUN apk add git\n\nWORKDIR /app\n\nCOPY . .\nRUN make\n\nCMD [\"sh\",\"-c\",\"echo a && echo <b>\"]\n",
		},
		{
			name: "parallel post-create runs in name order",
			spec: DockerfileSpec{
				BaseImage: "alpine",
				PostCreate: devcontainer.Command{Parallel: map[string]devcontainer.Command{
					"tools": devcontainer.ShellCommand("npm i"),
					"deps":  devcontainer.ShellCommand("pip install -r requirements.txt"),
				}},
				Command: []string{"./run.sh"},
			},
			want: "FROM alpine\n\nWORKDIR /app\n\nCOPY . .\nRUN pip install -r requirements.txt && npm i\n\nCMD [\"./run.sh\"]\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RenderDockerfile(tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestRenderDockerfile_Invalid(t *testing.T) {
	_, err := RenderDockerfile(DockerfileSpec{Command: []string{"x"}})
	require.ErrorIs(t, err, errors.ErrEmptyValue)

	_, err = RenderDockerfile(DockerfileSpec{BaseImage: "alpine"})
	require.ErrorIs(t, err, errors.ErrMissingExecutable)
}
