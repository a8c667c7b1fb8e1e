package config

import (
	"fmt"
	"time"
)

// GeneratorConfig defines configuration for the synthetic log writer
type GeneratorConfig struct {
	FilePath string        `yaml:"file_path" env:"LOGPULSE_FILE"`
	Interval time.Duration `yaml:"interval"`
	Seed     int64         `yaml:"seed"` // 0 seeds from the clock
	Logging  LoggingConfig `yaml:"logging"`
}

// LoadGeneratorConfig loads the generator configuration from the specified YAML file path
func LoadGeneratorConfig(path string) (*GeneratorConfig, error) {
	var cfg GeneratorConfig
	if err := load(path, &cfg, true); err != nil {
		return nil, err
	}

	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
		fmt.Printf("Warning: interval not set or invalid, defaulting to %v\n", cfg.Interval)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.Logging.SetDefaults()

	if cfg.FilePath == "" {
		return nil, ErrMissingFilePath
	}
	return &cfg, nil
}
