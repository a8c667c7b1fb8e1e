package config

import (
	"fmt"
	"time"
)

// TailConfig names the file to follow
type TailConfig struct {
	FilePath string `yaml:"file_path" env:"LOGPULSE_FILE"`
}

// WindowConfig holds the aggregation windows and the alert threshold
type WindowConfig struct {
	Short          time.Duration `yaml:"short" env:"LOGPULSE_SHORT_WINDOW"`             // Summary interval
	Long           time.Duration `yaml:"long" env:"LOGPULSE_LONG_WINDOW"`               // Alert window
	AlertThreshold *int          `yaml:"alert_threshold" env:"LOGPULSE_ALERT_THRESHOLD"` // nil means unset; 0 is a valid threshold
	TopSections    int           `yaml:"top_sections"`
}

// SetDefaults sets the default windows
func (c *WindowConfig) SetDefaults() {
	if c.Short == 0 {
		c.Short = 10 * time.Second
		fmt.Printf("Warning: window.short not set, defaulting to %v\n", c.Short)
	}
	if c.Long == 0 {
		c.Long = 2 * time.Minute
		fmt.Printf("Warning: window.long not set, defaulting to %v\n", c.Long)
	}
	if c.AlertThreshold == nil {
		threshold := 10
		c.AlertThreshold = &threshold
		fmt.Printf("Warning: window.alert_threshold not set, defaulting to %d\n", threshold)
	}
	if c.TopSections == 0 {
		c.TopSections = 3
		fmt.Printf("Warning: window.top_sections not set, defaulting to %d\n", c.TopSections)
	}
}

// Validate checks the window relationships
func (c *WindowConfig) Validate() error {
	if c.Short <= 0 {
		return fmt.Errorf("window.short must be positive, got %v", c.Short)
	}
	if c.Long < c.Short {
		return fmt.Errorf("window.long (%v) cannot be shorter than window.short (%v)", c.Long, c.Short)
	}
	if c.AlertThreshold != nil && *c.AlertThreshold < 0 {
		return fmt.Errorf("window.alert_threshold cannot be negative, got %d", *c.AlertThreshold)
	}
	if c.TopSections <= 0 {
		return fmt.Errorf("window.top_sections must be positive, got %d", c.TopSections)
	}
	return nil
}

// Threshold returns the alert threshold, 0 when unset
func (c *WindowConfig) Threshold() int {
	if c.AlertThreshold == nil {
		return 0
	}
	return *c.AlertThreshold
}

// WebhookConfig configures the optional alert webhook
type WebhookConfig struct {
	URL     string        `yaml:"url" env:"LOGPULSE_WEBHOOK_URL"` // Empty disables the webhook
	Timeout time.Duration `yaml:"timeout"`
}

// SetDefaults sets the request timeout of an enabled webhook
func (c *WebhookConfig) SetDefaults() {
	if c.URL != "" && c.Timeout == 0 {
		c.Timeout = 10 * time.Second
		fmt.Printf("Warning: webhook.timeout not set, defaulting to %v\n", c.Timeout)
	}
}

// StatusConfig configures the optional status endpoints
type StatusConfig struct {
	HttpListenAddr string `yaml:"http_listen_addr" env:"LOGPULSE_HTTP_ADDR"`
	GrpcListenAddr string `yaml:"grpc_listen_addr" env:"LOGPULSE_GRPC_ADDR"`
}

// MonitorConfig defines all configuration for the log monitor
type MonitorConfig struct {
	Tail          TailConfig          `yaml:"tail"`
	Window        WindowConfig        `yaml:"window"`
	Logging       LoggingConfig       `yaml:"logging"`
	KafkaProducer KafkaProducerConfig `yaml:"kafka_producer"`
	Database      DatabaseConfig      `yaml:"database"`
	Webhook       WebhookConfig       `yaml:"webhook"`
	Status        StatusConfig        `yaml:"status"`
}

// LoadMonitorConfig loads the monitor configuration from path, applies environment
// overrides and defaults, and validates the result
func LoadMonitorConfig(path string) (*MonitorConfig, error) {
	var cfg MonitorConfig
	if err := load(path, &cfg, true); err != nil {
		return nil, err
	}

	cfg.Window.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.KafkaProducer.SetDefaults()
	cfg.Database.SetDefaults()
	cfg.Webhook.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the whole monitor configuration
func (c *MonitorConfig) Validate() error {
	if c.Tail.FilePath == "" {
		return ErrMissingFilePath
	}
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("window configuration error: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database configuration error: %w", err)
	}
	return nil
}
