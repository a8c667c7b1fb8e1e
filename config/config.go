package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// ErrMissingFilePath is returned when no log file to tail is configured
var ErrMissingFilePath = errors.New("tail.file_path is required")

// Default file names inside a config directory
const (
	MonitorFile   = "monitor.defaults.yml"
	FollowerFile  = "follower.defaults.yml"
	GeneratorFile = "loggen.defaults.yml"
)

// PathIn returns the absolute path of name inside configDir
func PathIn(configDir, name string) (string, error) {
	absDir, err := filepath.Abs(configDir)
	if err != nil {
		return "", fmt.Errorf("unable to get absolute path of config directory: %w", err)
	}
	return filepath.Join(absDir, name), nil
}

// load reads the YAML file at path into out and then applies LOGPULSE_* environment
// overrides. A missing file is not an error when optional is set, so a deployment can
// rely on the environment alone.
func load(path string, out interface{}, optional bool) error {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		fmt.Printf("Loading configuration from '%s'...\n", path)
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
		fmt.Printf("Warning: config file '%s' not found, using environment and defaults\n", path)
	default:
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := env.Parse(out); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// LoggingConfig selects the log level
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOGPULSE_LOG_LEVEL"` // debug, info, warn, error
}

// SetDefaults sets the default log level
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
		fmt.Printf("Warning: logging.level not set, defaulting to %s\n", c.Level)
	}
}
