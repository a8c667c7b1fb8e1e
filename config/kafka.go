package config

import (
	"fmt"
	"time"
)

// KafkaProducerConfig configures the optional report publisher
type KafkaProducerConfig struct {
	Brokers []string `yaml:"brokers"` // Empty disables publishing
	Topic   string   `yaml:"topic"`

	BatchSize    int           `yaml:"batch_size"`
	BatchTimeout time.Duration `yaml:"batch_timeout"`
	BatchBytes   int           `yaml:"batch_bytes"`

	RequiredAcks string `yaml:"required_acks"` // none, one, all
	Async        bool   `yaml:"async"`

	WriteTimeout time.Duration `yaml:"write_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
}

// Enabled reports whether any broker is configured
func (c *KafkaProducerConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// SetDefaults fills the topic of an enabled producer
func (c *KafkaProducerConfig) SetDefaults() {
	if !c.Enabled() {
		return
	}
	if c.Topic == "" {
		c.Topic = "logpulse.reports"
		fmt.Printf("Warning: kafka_producer.topic not set, defaulting to %s\n", c.Topic)
	}
	if c.RequiredAcks == "" {
		c.RequiredAcks = "one"
		fmt.Printf("Warning: kafka_producer.required_acks not set, defaulting to %s\n", c.RequiredAcks)
	}
}

// KafkaConsumerConfig configures the report follower
type KafkaConsumerConfig struct {
	Brokers           []string `yaml:"brokers"` // "mock://local" selects the in-memory consumer
	Topic             string   `yaml:"topic"`
	GroupID           string   `yaml:"group_id"`
	SessionTimeout    string   `yaml:"session_timeout"`
	HeartbeatInterval string   `yaml:"heartbeat_interval"`
	AutoOffsetReset   string   `yaml:"auto_offset_reset"` // earliest/latest
}

// MockBroker is the broker address that selects the in-memory consumer
const MockBroker = "mock://local"

// UseMock reports whether the in-memory consumer is selected
func (c *KafkaConsumerConfig) UseMock() bool {
	return len(c.Brokers) == 1 && c.Brokers[0] == MockBroker
}

// SetDefaults sets reasonable default values for Kafka consumer configuration
func (c *KafkaConsumerConfig) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "logpulse.reports"
		fmt.Printf("Warning: kafka_consumer.topic not set, defaulting to %s\n", c.Topic)
	}
	if c.GroupID == "" {
		c.GroupID = "logpulse-follow"
		fmt.Printf("Warning: kafka_consumer.group_id not set, defaulting to %s\n", c.GroupID)
	}
	if c.SessionTimeout == "" {
		c.SessionTimeout = "30s"
		fmt.Printf("Warning: kafka_consumer.session_timeout not set, defaulting to %s\n", c.SessionTimeout)
	}
	if c.HeartbeatInterval == "" {
		c.HeartbeatInterval = "3s"
		fmt.Printf("Warning: kafka_consumer.heartbeat_interval not set, defaulting to %s\n", c.HeartbeatInterval)
	}
	if c.AutoOffsetReset == "" {
		c.AutoOffsetReset = "latest"
		fmt.Printf("Warning: kafka_consumer.auto_offset_reset not set, defaulting to %s\n", c.AutoOffsetReset)
	}
}

// Validate checks that the consumer can connect somewhere
func (c *KafkaConsumerConfig) Validate() error {
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka_consumer.brokers is required")
	}
	return nil
}
