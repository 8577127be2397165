package audit

import (
	"context"
	"iter"

	"github.com/mrz1836/repro/internal/devcontainer"
)

// DevContainerCheck audits the dev container configuration.
type DevContainerCheck struct {
	Inspector Inspector
}

// Name implements Check.
func (c *DevContainerCheck) Name() string {
	return "Dev Container Configuration"
}

// Subchecks implements Check. Only the first configuration found is read.
func (c *DevContainerCheck) Subchecks(ctx context.Context) iter.Seq[SubCheckResult] {
	return func(yield func(SubCheckResult) bool) {
		paths := c.Inspector.Fetch(ctx, DevContainerConfPaths).Get(DevContainerConfPaths).Strings()
		if len(paths) == 0 {
			yield(failure("Find Dev Container Configuration", HintConfigureDevContainer, "No configuration found"))
			return
		}
		if !yield(success("Find Dev Container Configuration", paths[0])) {
			return
		}

		d, err := devcontainer.Load(paths[0])
		if err != nil {
			yield(failure("Parse configuration", HintFixDevContainer, err.Error()))
			return
		}
		if !yield(success("Parse configuration", "Container name: "+d.DisplayName())) {
			return
		}

		switch {
		case d.Image == "" && d.Dockerfile() == "":
			if !yield(failure("Base image or Dockerfile", HintChooseBaseImage, "Neither image nor build.dockerfile is set")) {
				return
			}
		default:
			if d.Image != "" && !yield(success("Base image", d.Image)) {
				return
			}
			if d.Dockerfile() != "" && !yield(success("Dockerfile", d.Dockerfile())) {
				return
			}
		}

		postCreate := d.PostCreateCommand.String()
		if postCreate == "" {
			postCreate = "<not set>"
		}
		yield(success("Post-create command", postCreate))
	}
}

var _ Check = (*DevContainerCheck)(nil)

// DefaultChecks returns the built-in checks for a project directory.
func DefaultChecks(inspector Inspector) []Check {
	return []Check{
		&GitCheck{Inspector: inspector},
		&DevContainerCheck{Inspector: inspector},
	}
}

