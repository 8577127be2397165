package config

import (
	"regexp"

	"github.com/mrz1836/repro/internal/errors"
)

// imagePrefixPattern restricts image prefixes to valid lowercase repository names.
var imagePrefixPattern = regexp.MustCompile(`^[a-z0-9]+(?:[._-][a-z0-9]+)*$`) //nolint:gochecknoglobals // compiled once

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - source clone timeout must be positive
//   - environment base image must not be empty
//   - container engine must not be empty
//   - container image prefix must be a valid lowercase image name
//   - container build/run timeouts must not be negative
//   - audit inspect timeout must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSourceConfig(&cfg.Source); err != nil {
		return err
	}

	if err := validateEnvironmentConfig(&cfg.Environment); err != nil {
		return err
	}

	if err := validateContainerConfig(&cfg.Container); err != nil {
		return err
	}

	if cfg.Audit.InspectTimeout <= 0 {
		return errors.Wrapf(errors.ErrEmptyValue,
			"audit.inspect_timeout must be positive, got %s", cfg.Audit.InspectTimeout)
	}

	return nil
}

func validateSourceConfig(cfg *SourceConfig) error {
	if cfg.CloneTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidSource,
			"source.clone_timeout must be positive, got %s", cfg.CloneTimeout)
	}
	return nil
}

func validateEnvironmentConfig(cfg *EnvironmentConfig) error {
	if cfg.BaseImage == "" {
		return errors.Wrap(errors.ErrConfigInvalidEnvironment,
			"environment.base_image must not be empty")
	}
	return nil
}

func validateContainerConfig(cfg *ContainerConfig) error {
	if cfg.Engine == "" {
		return errors.Wrap(errors.ErrConfigInvalidContainer,
			"container.engine must not be empty")
	}

	if !imagePrefixPattern.MatchString(cfg.ImagePrefix) {
		return errors.Wrapf(errors.ErrConfigInvalidContainer,
			"container.image_prefix must be a lowercase image name, got %q", cfg.ImagePrefix)
	}

	if cfg.BuildTimeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidContainer,
			"container.build_timeout must not be negative, got %s", cfg.BuildTimeout)
	}

	if cfg.RunTimeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidContainer,
			"container.run_timeout must not be negative, got %s", cfg.RunTimeout)
	}

	return nil
}
