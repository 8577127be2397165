package environment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mrz1836/repro/internal/constants"
	"github.com/mrz1836/repro/internal/devcontainer"
	"github.com/mrz1836/repro/internal/errors"
)

// DockerfileSpec is the input of RenderDockerfile.
type DockerfileSpec struct {
	Platform   string
	BaseImage  string
	SetupSteps []string
	PostCreate devcontainer.Command
	Command    []string
}

// RenderDockerfile renders the synthesized Dockerfile. Equal specs render to
// identical bytes.
//
//	FROM --platform=<platform> <base image>
//	RUN <setup step>...
//	WORKDIR /app
//	COPY . .
//	RUN <post-create>
//	CMD ["argv", ...]
func RenderDockerfile(spec DockerfileSpec) ([]byte, error) {
	if spec.BaseImage == "" {
		return nil, errors.Wrap(errors.ErrEmptyValue, "base image")
	}
	if len(spec.Command) == 0 {
		return nil, errors.ErrMissingExecutable
	}

	var b bytes.Buffer

	b.WriteString("FROM ")
	if spec.Platform != "" {
		fmt.Fprintf(&b, "--platform=%s ", spec.Platform)
	}
	b.WriteString(spec.BaseImage)
	b.WriteString("\n")

	for _, step := range spec.SetupSteps {
		if strings.TrimSpace(step) == "" {
			continue
		}
		fmt.Fprintf(&b, "\nRUN %s\n", step)
	}

	fmt.Fprintf(&b, "\nWORKDIR %s\n\nCOPY . .\n", constants.ContainerWorkDir)

	if !spec.PostCreate.IsZero() {
		line := spec.PostCreate.ShellLine()
		if spec.PostCreate.IsExec() {
			encoded, err := execForm(spec.PostCreate.Args)
			if err != nil {
				return nil, err
			}
			line = encoded
		}
		fmt.Fprintf(&b, "RUN %s\n", line)
	}

	cmd, err := execForm(spec.Command)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&b, "\nCMD %s\n", cmd)

	return b.Bytes(), nil
}

// execForm encodes argv as a JSON array for exec-form instructions.
func execForm(argv []string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(argv); err != nil {
		return "", errors.Wrap(err, "failed to encode command")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
