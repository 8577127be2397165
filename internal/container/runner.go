package container

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/repro/internal/config"
	"github.com/mrz1836/repro/internal/environment"
)

// invalidImageChars matches characters not allowed in an image name component.
var invalidImageChars = regexp.MustCompile(`[^a-z0-9._-]+`) //nolint:gochecknoglobals // compiled once

// ImageName derives the image tag for a working directory:
// <prefix>-<sanitized base name>, lowercase.
func ImageName(prefix, dir string) string {
	base := strings.ToLower(filepath.Base(filepath.Clean(dir)))
	base = invalidImageChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "._-")
	if base == "" {
		return prefix
	}
	return prefix + "-" + base
}

// Runner builds the image for a prepared environment and runs it.
type Runner struct {
	Engine       Engine
	ImagePrefix  string
	BuildTimeout time.Duration
	RunTimeout   time.Duration
}

// NewRunner returns a Runner configured from the container section of the
// configuration.
func NewRunner(engine Engine, cfg config.ContainerConfig) *Runner {
	return &Runner{
		Engine:       engine,
		ImagePrefix:  cfg.ImagePrefix,
		BuildTimeout: cfg.BuildTimeout,
		RunTimeout:   cfg.RunTimeout,
	}
}

// Run builds the image, then runs it. The run step starts only after the
// build succeeded. Failures are returned as *errors.ExternalToolError.
func (r *Runner) Run(ctx context.Context, env *environment.Environment, networkAccess bool) error {
	logger := zerolog.Ctx(ctx)
	image := ImageName(r.ImagePrefix, env.Dir)

	buildCtx, cancel := withOptionalTimeout(ctx, r.BuildTimeout)
	defer cancel()

	logger.Info().Str("image", image).Str("dockerfile", env.Dockerfile).Msg("building image")
	if err := r.Engine.Build(buildCtx, BuildOptions{
		Image:      image,
		ContextDir: env.ContextDir,
		Dockerfile: env.Dockerfile,
	}); err != nil {
		return err
	}

	opts := RunOptions{Image: image, Remove: true, NetworkAccess: networkAccess}
	if !env.CommandInImage {
		opts.Command = env.Command
	}

	runCtx, cancelRun := withOptionalTimeout(ctx, r.RunTimeout)
	defer cancelRun()

	logger.Info().
		Str("image", image).
		Strs("command", env.Command).
		Bool("network_access", networkAccess).
		Msg("running experiment")
	return r.Engine.Run(runCtx, opts)
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
