package devcontainer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/repro/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Descriptor
	}{
		{
			name: "image with string post-create",
			input: `{
				// experiment container
				"name": "ir-baseline",
				"image": "mcr.microsoft.com/devcontainers/python:3",
				"postCreateCommand": "pip3 install -r requirements.txt",
			}`,
			want: Descriptor{
				Name:              "ir-baseline",
				Image:             "mcr.microsoft.com/devcontainers/python:3",
				PostCreateCommand: ShellCommand("pip3 install -r requirements.txt"),
			},
		},
		{
			name:  "dockerfile with array post-create",
			input: `{"build": {"dockerfile": "Dockerfile", "context": ".."}, "postCreateCommand": ["make", "deps"]}`,
			want: Descriptor{
				Build:             &BuildSpec{Dockerfile: "Dockerfile", Context: ".."},
				PostCreateCommand: Command{Args: []string{"make", "deps"}},
			},
		},
		{
			name:  "object post-create and non-string name",
			input: `{"name": 7, "image": "", "postCreateCommand": {"deps": "make deps", "lint": ["make", "lint"]}}`,
			want: Descriptor{
				Name: "7",
				PostCreateCommand: Command{Parallel: map[string]Command{
					"deps": ShellCommand("make deps"),
					"lint": {Args: []string{"make", "lint"}},
				}},
			},
		},
		{
			name:  "unknown keys are kept out",
			input: `{"image": "alpine", "customizations": {"vscode": {"extensions": []}}}`,
			want:  Descriptor{Image: "alpine"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse([]byte(tc.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, *got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"image": `},
		{"root is an array", `["alpine"]`},
		{"image is a number", `{"image": 3}`},
		{"dockerfile is a number", `{"build": {"dockerfile": 1}}`},
		{"parallel post-create with a number", `{"image": "alpine", "postCreateCommand": {"a": 1}}`},
		{"build is a string", `{"build": "Dockerfile"}`},
		{"post-create is a number", `{"image": "alpine", "postCreateCommand": 1}`},
		{"post-create array of numbers", `{"image": "alpine", "postCreateCommand": [1, 2]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.ErrorIs(t, err, errors.ErrDescriptorInvalid)
		})
	}
}

func TestLoad_ResolvesPaths(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".devcontainer")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "devcontainer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"build": {"dockerfile": "Dockerfile", "context": ".."}}`), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Path)
	assert.Equal(t, filepath.Join(dir, "Dockerfile"), d.DockerfilePath())
	assert.Equal(t, root, d.ContextDir())
	assert.Equal(t, "unnamed", d.DisplayName())
}

func TestLoad_DefaultContextIsDescriptorDir(t *testing.T) {
	d := &Descriptor{Path: filepath.Join("proj", ".devcontainer", "devcontainer.json")}
	assert.Equal(t, filepath.Join("proj", ".devcontainer"), d.ContextDir())
	assert.Empty(t, d.DockerfilePath())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "devcontainer.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_Deterministic(t *testing.T) {
	d := &Descriptor{
		Name:              "repro",
		Build:             &BuildSpec{Dockerfile: "Dockerfile", Context: ".."},
		PostCreateCommand: ShellCommand("pip3 install --user -r requirements.txt"),
	}

	first, err := Marshal(d)
	require.NoError(t, err)
	second, err := Marshal(d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, `{
  "name": "repro",
  "build": {
    "dockerfile": "Dockerfile",
    "context": ".."
  },
  "postCreateCommand": "pip3 install --user -r requirements.txt"
}
`, string(first))
}

func TestMarshal_OmitsEmptyCommand(t *testing.T) {
	data, err := Marshal(&Descriptor{Image: "alpine"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"image\": \"alpine\"\n}\n", string(data))
}

func TestCommand_RoundTripForms(t *testing.T) {
	d, err := Parse([]byte(`{"image": "alpine", "postCreateCommand": ["a", "b c"]}`))
	require.NoError(t, err)
	assert.True(t, d.PostCreateCommand.IsExec())
	assert.Equal(t, "a b c", d.PostCreateCommand.String())

	data, err := Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"postCreateCommand": [`)
}

func TestCommand_Parallel(t *testing.T) {
	d, err := Parse([]byte(`{"image": "alpine", "postCreateCommand": {"tools": "npm i", "deps": ["pip", "install", "-e", "."]}}`))
	require.NoError(t, err)

	cmd := d.PostCreateCommand
	assert.True(t, cmd.IsParallel())
	assert.False(t, cmd.IsExec())
	assert.Equal(t, []string{"deps", "tools"}, cmd.Names())
	assert.Equal(t, "deps: pip install -e .; tools: npm i", cmd.String())
	assert.Equal(t, "pip install -e . && npm i", cmd.ShellLine())

	data, err := Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"postCreateCommand": {`)
}

func TestDisplayName(t *testing.T) {
	d, err := Parse([]byte(`{"name": {"team": "ir"}, "image": "alpine"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"team":"ir"}`, d.DisplayName())

	d, err = Parse([]byte(`{"name": null, "image": "alpine"}`))
	require.NoError(t, err)
	assert.Equal(t, "unnamed", d.DisplayName())
}
