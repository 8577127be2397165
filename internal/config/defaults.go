package config

import (
	"github.com/mrz1836/repro/internal/constants"
)

// DefaultSetupSteps returns the auxiliary RUN steps of the default base layer.
// The yarn key shipped in the base image is expired, which breaks apt-get update;
// the experiments need a JDK.
func DefaultSetupSteps() []string {
	return []string{
		"curl -fsSL https://dl.yarnpkg.com/debian/pubkey.gpg | gpg --dearmor | sudo tee /usr/share/keyrings/yarn-archive-keyring.gpg > /dev/null",
		"apt-get update && apt-get install -y openjdk-21-jdk",
	}
}

// DefaultConfig returns a new Config with default values.
// These defaults are the base layer that config files, environment
// variables and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			HTTPSFallback: true,
			CloneTimeout:  constants.DefaultCloneTimeout,
		},
		Environment: EnvironmentConfig{
			BaseImage:         constants.DefaultBaseImage,
			Platform:          constants.DefaultPlatform,
			SetupSteps:        DefaultSetupSteps(),
			PostCreateCommand: constants.DefaultPostCreateCommand,
			UseManifestSetup:  false,
		},
		Container: ContainerConfig{
			Engine:        constants.DefaultContainerEngine,
			ImagePrefix:   constants.DefaultImagePrefix,
			NetworkAccess: true,
		},
		Audit: AuditConfig{
			InspectTimeout: constants.DefaultInspectTimeout,
		},
	}
}
