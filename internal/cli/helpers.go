// Package cli implements the snapfetch commands.
package cli

import (
	"github.com/snapfetch/snapfetch/pkg/config"
	"github.com/snapfetch/snapfetch/pkg/errors"
)

// Shared variables set by the main package from global flags.
var (
	ConfigPath *string
	LogLevel   *string
)

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "config.yaml"

func loadConfig() (*config.Config, error) {
	path := DefaultConfigPath
	if ConfigPath != nil && *ConfigPath != "" {
		path = *ConfigPath
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// logLevelFor lets the --log-level flag override the configured level.
func logLevelFor(cfg *config.Config) string {
	if LogLevel != nil && *LogLevel != "" {
		return *LogLevel
	}
	return cfg.LogLevel
}
