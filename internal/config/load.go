package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/repro/internal/errors"
)

// newViperInstance creates a new Viper instance with standard repro configuration.
// This includes environment variable prefix (REPRO_), key replacer, and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("REPRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence:
// environment variables, then the project config (.repro.yaml), then the
// global config (~/.repro/config.yaml), then built-in defaults.
//
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	globalPath, _ := getGlobalConfigPathIfExists()
	projectPath := ""
	if fileExists(ProjectConfigPath()) {
		projectPath = ProjectConfigPath()
	}

	cfg, err := LoadFromPaths(ctx, projectPath, globalPath)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("global_config", globalPath).
		Str("project_config", projectPath).
		Str("container.engine", cfg.Container.Engine).
		Bool("container.network_access", cfg.Container.NetworkAccess).
		Dur("source.clone_timeout", cfg.Source.CloneTimeout).
		Msg("configuration loaded")

	return cfg, nil
}

// getGlobalConfigPathIfExists returns the global config path if it exists.
func getGlobalConfigPathIfExists() (string, bool) {
	globalConfigPath, err := GlobalConfigPath()
	if err != nil {
		return "", false
	}
	if !fileExists(globalConfigPath) {
		return "", false
	}
	return globalConfigPath, true
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromPaths loads configuration from specific file paths.
//
// projectConfigPath is the path to project-level config (higher priority).
// globalConfigPath is the path to global config (lower priority).
// Either path can be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero values in overrides are applied. Boolean fields cannot be
// overridden to false this way; commands apply changed bool flags directly.
func LoadWithOverrides(ctx context.Context, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly for proper mapping.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("source.https_fallback", d.Source.HTTPSFallback)
	v.SetDefault("source.clone_timeout", d.Source.CloneTimeout.String())

	v.SetDefault("environment.base_image", d.Environment.BaseImage)
	v.SetDefault("environment.platform", d.Environment.Platform)
	v.SetDefault("environment.setup_steps", d.Environment.SetupSteps)
	v.SetDefault("environment.post_create_command", d.Environment.PostCreateCommand)
	v.SetDefault("environment.use_manifest_setup", d.Environment.UseManifestSetup)

	v.SetDefault("container.engine", d.Container.Engine)
	v.SetDefault("container.image_prefix", d.Container.ImagePrefix)
	v.SetDefault("container.network_access", d.Container.NetworkAccess)
	v.SetDefault("container.build_timeout", "0s")
	v.SetDefault("container.run_timeout", "0s")

	v.SetDefault("audit.inspect_timeout", d.Audit.InspectTimeout.String())
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Source.CloneTimeout != 0 {
		cfg.Source.CloneTimeout = overrides.Source.CloneTimeout
	}

	if overrides.Environment.BaseImage != "" {
		cfg.Environment.BaseImage = overrides.Environment.BaseImage
	}
	if overrides.Environment.PostCreateCommand != "" {
		cfg.Environment.PostCreateCommand = overrides.Environment.PostCreateCommand
	}

	if overrides.Container.Engine != "" {
		cfg.Container.Engine = overrides.Container.Engine
	}
	if overrides.Container.ImagePrefix != "" {
		cfg.Container.ImagePrefix = overrides.Container.ImagePrefix
	}
	if overrides.Container.BuildTimeout != 0 {
		cfg.Container.BuildTimeout = overrides.Container.BuildTimeout
	}
	if overrides.Container.RunTimeout != 0 {
		cfg.Container.RunTimeout = overrides.Container.RunTimeout
	}
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// This configures mapstructure to handle time.Duration conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
