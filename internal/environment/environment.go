// Package environment materializes the container build descriptor for a
// fetched source snapshot. An existing dev container configuration is used
// when it is usable; otherwise one is synthesized from the manifest and the
// configured defaults.
package environment

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/repro/internal/config"
	"github.com/mrz1836/repro/internal/constants"
	"github.com/mrz1836/repro/internal/devcontainer"
	"github.com/mrz1836/repro/internal/errors"
)

// descriptorName names synthesized descriptors.
const descriptorName = "repro"

// CommandSource is the part of a manifest the builder reads.
type CommandSource interface {
	Command() ([]string, error)
	SetupCommand() ([]string, bool)
}

// Environment is a build-ready descriptor for a working directory.
type Environment struct {
	// Dir is the working directory holding the source snapshot.
	Dir string

	// Descriptor is the dev container configuration in use.
	Descriptor *devcontainer.Descriptor

	// Dockerfile is the absolute path of the Dockerfile to build.
	Dockerfile string

	// ContextDir is the build context directory.
	ContextDir string

	// Command is the recorded experiment argv.
	Command []string

	// CommandInImage is true when the Dockerfile ends with CMD Command,
	// so the image runs the experiment without extra arguments.
	CommandInImage bool

	// Synthesized is true when repro wrote the descriptor itself.
	Synthesized bool
}

// Builder discovers or synthesizes build descriptors.
type Builder struct {
	BaseImage         string
	Platform          string
	SetupSteps        []string
	PostCreateCommand string
	UseManifestSetup  bool
}

// NewBuilder returns a Builder configured from the environment section of
// the configuration.
func NewBuilder(cfg config.EnvironmentConfig) *Builder {
	return &Builder{
		BaseImage:         cfg.BaseImage,
		Platform:          cfg.Platform,
		SetupSteps:        cfg.SetupSteps,
		PostCreateCommand: cfg.PostCreateCommand,
		UseManifestSetup:  cfg.UseManifestSetup,
	}
}

// Build prepares dest for an image build. The recorded command is looked up
// first; a manifest without one fails with errors.ErrMissingExecutable
// before anything is written.
func (b *Builder) Build(ctx context.Context, m CommandSource, dest string) (*Environment, error) {
	logger := zerolog.Ctx(ctx)

	argv, err := m.Command()
	if err != nil {
		return nil, err
	}

	env := &Environment{Dir: dest, Command: argv}

	if paths := devcontainer.Find(dest); len(paths) > 0 {
		d, loadErr := devcontainer.Load(paths[0])
		switch {
		case loadErr != nil:
			logger.Warn().Err(loadErr).Str("descriptor", paths[0]).
				Msg("ignoring unusable dev container configuration")
		case d.Dockerfile() != "":
			if _, statErr := os.Stat(d.DockerfilePath()); statErr != nil {
				logger.Warn().Err(statErr).Str("descriptor", paths[0]).
					Msg("ignoring dev container configuration with missing Dockerfile")
				break
			}
			logger.Info().Str("descriptor", paths[0]).Str("dockerfile", d.DockerfilePath()).
				Msg("using existing dev container configuration")
			env.Descriptor = d
			env.Dockerfile = d.DockerfilePath()
			env.ContextDir = d.ContextDir()
			return env, nil
		case d.Image != "":
			logger.Info().Str("descriptor", paths[0]).Str("image", d.Image).
				Msg("using base image from existing dev container configuration")
			return b.synthesize(ctx, env, d.Image, nil, b.postCreate(m, d.PostCreateCommand))
		default:
			logger.Warn().Str("descriptor", paths[0]).
				Msg("dev container configuration declares neither image nor Dockerfile")
		}
	} else {
		logger.Warn().Msg("no dev container configuration found, creating one from the manifest")
	}

	return b.synthesize(ctx, env, b.BaseImage, b.SetupSteps, b.postCreate(m, devcontainer.Command{}))
}

// postCreate picks the post-create command: the manifest's setup command when
// enabled, then the descriptor's, then the configured default.
func (b *Builder) postCreate(m CommandSource, fromDescriptor devcontainer.Command) devcontainer.Command {
	if b.UseManifestSetup {
		if setup, ok := m.SetupCommand(); ok {
			if len(setup) == 1 {
				return devcontainer.ShellCommand(setup[0])
			}
			return devcontainer.Command{Args: setup}
		}
	}
	if !fromDescriptor.IsZero() {
		return fromDescriptor
	}
	if b.PostCreateCommand == "" {
		return devcontainer.Command{}
	}
	return devcontainer.ShellCommand(b.PostCreateCommand)
}

func (b *Builder) synthesize(ctx context.Context, env *Environment, image string, setup []string, postCreate devcontainer.Command) (*Environment, error) {
	dir := filepath.Join(env.Dir, constants.DevContainerDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create descriptor directory")
	}

	dockerfile, err := RenderDockerfile(DockerfileSpec{
		Platform:   b.Platform,
		BaseImage:  image,
		SetupSteps: setup,
		PostCreate: postCreate,
		Command:    env.Command,
	})
	if err != nil {
		return nil, err
	}

	descriptor := &devcontainer.Descriptor{
		Name:              descriptorName,
		Build:             &devcontainer.BuildSpec{Dockerfile: constants.DockerfileName, Context: ".."},
		PostCreateCommand: postCreate,
		Path:              filepath.Join(dir, constants.DevContainerFile),
	}
	descriptorJSON, err := devcontainer.Marshal(descriptor)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(descriptor.DockerfilePath(), dockerfile, 0o600); err != nil {
		return nil, errors.Wrap(err, "failed to write Dockerfile")
	}
	if err := os.WriteFile(descriptor.Path, descriptorJSON, 0o600); err != nil {
		return nil, errors.Wrap(err, "failed to write dev container configuration")
	}

	zerolog.Ctx(ctx).Info().
		Str("dockerfile", descriptor.DockerfilePath()).
		Str("base_image", image).
		Msg("created a Dockerfile")

	env.Descriptor = descriptor
	env.Dockerfile = descriptor.DockerfilePath()
	env.ContextDir = descriptor.ContextDir()
	env.CommandInImage = true
	env.Synthesized = true
	return env, nil
}
