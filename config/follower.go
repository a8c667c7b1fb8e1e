package config

import "fmt"

// FollowerConfig defines all configuration for the report follower
type FollowerConfig struct {
	KafkaConsumer KafkaConsumerConfig `yaml:"kafka_consumer"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// LoadFollowerConfig loads the follower configuration from the specified YAML file path
func LoadFollowerConfig(path string) (*FollowerConfig, error) {
	var cfg FollowerConfig
	if err := load(path, &cfg, false); err != nil {
		return nil, err
	}

	cfg.KafkaConsumer.SetDefaults()
	cfg.Logging.SetDefaults()

	if err := cfg.KafkaConsumer.Validate(); err != nil {
		return nil, fmt.Errorf("kafka consumer configuration error: %w", err)
	}
	return &cfg, nil
}
