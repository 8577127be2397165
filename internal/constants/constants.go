// Package constants provides centralized constant values used throughout repro.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by repro for organizing data.
const (
	// ReproHome is the hidden directory name where repro stores its config and logs.
	// This directory is created in the user's home directory.
	ReproHome = ".repro"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// WorkDirPattern is the os.MkdirTemp pattern for pipeline working directories.
	WorkDirPattern = "repro-*"
)

// Manifest paths read by the reproduction pipeline.
//
//nolint:gochecknoglobals // Fixed manifest schema paths
var (
	// ManifestRepositoryPath locates the git remote of the recorded source.
	ManifestRepositoryPath = []string{"implementation", "source", "repository"}

	// ManifestCommitPath locates the recorded revision.
	ManifestCommitPath = []string{"implementation", "source", "commit"}

	// ManifestCommandPath locates the argv of the recorded experiment command.
	ManifestCommandPath = []string{"implementation", "executable", "cmd"}

	// ManifestSetupPath locates the optional setup command run after copying the source.
	ManifestSetupPath = []string{"implementation", "executable", "setup"}
)

// Container defaults.
const (
	// DefaultContainerEngine is the container CLI used for build and run.
	DefaultContainerEngine = "docker"

	// DefaultImagePrefix prefixes the image tag derived from the working directory.
	DefaultImagePrefix = "repro-experiment"

	// DefaultBaseImage is the pinned base environment for synthesized Dockerfiles.
	DefaultBaseImage = "mcr.microsoft.com/devcontainers/python:2-3.14-trixie"

	// DefaultPlatform is the platform passed to FROM in synthesized Dockerfiles.
	DefaultPlatform = "linux/amd64"

	// DefaultPostCreateCommand installs the experiment's Python requirements.
	DefaultPostCreateCommand = "pip3 install --user -r requirements.txt"

	// ContainerWorkDir is the directory the source is copied into inside the image.
	ContainerWorkDir = "/app"
)

// Dev container descriptor locations, relative to a project root.
const (
	// DevContainerDir is the conventional descriptor directory.
	DevContainerDir = ".devcontainer"

	// DevContainerFile is the descriptor file name.
	DevContainerFile = "devcontainer.json"

	// DevContainerRootFile is the single-file descriptor variant at the project root.
	DevContainerRootFile = ".devcontainer.json"

	// DockerfileName is the file name of synthesized Dockerfiles.
	DockerfileName = "Dockerfile"
)

// Timeout configurations for various operations.
const (
	// DefaultCloneTimeout bounds a single clone and checkout attempt.
	DefaultCloneTimeout = 10 * time.Minute

	// DefaultInspectTimeout bounds each git query made by the audit.
	DefaultInspectTimeout = 30 * time.Second
)
