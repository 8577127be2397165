package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/repro/internal/constants"
	"github.com/mrz1836/repro/internal/errors"
)

// GlobalConfigDir returns the path to the global repro configuration directory.
// REPRO_HOME overrides the default of ~/.repro.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv("REPRO_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.ReproHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
func ProjectConfigPath() string {
	return constants.ProjectConfigName
}
