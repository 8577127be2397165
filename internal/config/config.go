// Package config provides configuration management for repro with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides or applied by the command)
//  2. Environment variables (REPRO_* prefix)
//  3. Project config (.repro.yaml in the working directory)
//  4. Global config (~/.repro/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for repro.
type Config struct {
	// Source contains settings for fetching the recorded source snapshot.
	Source SourceConfig `yaml:"source" mapstructure:"source"`

	// Environment contains settings for synthesizing container descriptors.
	Environment EnvironmentConfig `yaml:"environment" mapstructure:"environment"`

	// Container contains settings for the container engine.
	Container ContainerConfig `yaml:"container" mapstructure:"container"`

	// Audit contains settings for the reproducibility audit.
	Audit AuditConfig `yaml:"audit" mapstructure:"audit"`
}

// SourceConfig contains settings for the source resolver.
type SourceConfig struct {
	// HTTPSFallback appends an https:// candidate for SCP-style (user@host:path)
	// repository locators.
	// Default: true
	HTTPSFallback bool `yaml:"https_fallback" mapstructure:"https_fallback"`

	// CloneTimeout bounds a single clone + checkout attempt.
	// Default: 10 minutes
	CloneTimeout time.Duration `yaml:"clone_timeout" mapstructure:"clone_timeout"`
}

// EnvironmentConfig contains settings for the environment builder.
type EnvironmentConfig struct {
	// BaseImage is the pinned image every synthesized Dockerfile starts FROM.
	BaseImage string `yaml:"base_image" mapstructure:"base_image"`

	// Platform is passed as --platform to the FROM line. Empty omits it.
	Platform string `yaml:"platform" mapstructure:"platform"`

	// SetupSteps are auxiliary RUN steps added after FROM, in order.
	SetupSteps []string `yaml:"setup_steps" mapstructure:"setup_steps"`

	// PostCreateCommand runs after the source is copied into the image.
	// Default: pip3 install --user -r requirements.txt
	PostCreateCommand string `yaml:"post_create_command" mapstructure:"post_create_command"`

	// UseManifestSetup takes the post-create command from
	// implementation.executable.setup when the manifest records one.
	// Default: false
	UseManifestSetup bool `yaml:"use_manifest_setup" mapstructure:"use_manifest_setup"`
}

// ContainerConfig contains settings for the container engine.
type ContainerConfig struct {
	// Engine is the container CLI binary (docker or podman).
	// Default: "docker"
	Engine string `yaml:"engine" mapstructure:"engine"`

	// ImagePrefix prefixes the image tag derived from the working directory.
	// Default: "repro-experiment"
	ImagePrefix string `yaml:"image_prefix" mapstructure:"image_prefix"`

	// NetworkAccess lets the experiment container reach the network.
	// When false the container runs with --network none.
	// Default: true
	NetworkAccess bool `yaml:"network_access" mapstructure:"network_access"`

	// BuildTimeout bounds the image build. Zero means no timeout.
	BuildTimeout time.Duration `yaml:"build_timeout" mapstructure:"build_timeout"`

	// RunTimeout bounds the experiment run. Zero means no timeout.
	RunTimeout time.Duration `yaml:"run_timeout" mapstructure:"run_timeout"`
}

// AuditConfig contains settings for the audit command.
type AuditConfig struct {
	// InspectTimeout bounds each git query made while inspecting a project.
	// Default: 30 seconds
	InspectTimeout time.Duration `yaml:"inspect_timeout" mapstructure:"inspect_timeout"`
}
