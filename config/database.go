package config

import (
	"fmt"
	"time"
)

// DatabaseConfig configures the optional Postgres alert history
type DatabaseConfig struct {
	DSN            string `yaml:"dsn" json:"dsn" env:"LOGPULSE_DATABASE_DSN"` // PostgreSQL connection string; empty disables the store
	MaxConnections int    `yaml:"max_connections" json:"max_connections"`
	MinConnections int    `yaml:"min_connections" json:"min_connections"`
	MaxIdleTime    string `yaml:"max_idle_time" json:"max_idle_time"`
	MaxLifetime    string `yaml:"max_lifetime" json:"max_lifetime"`
}

// Enabled reports whether a DSN is configured
func (c *DatabaseConfig) Enabled() bool {
	return c.DSN != ""
}

// SetDefaults fills the pool limits. Alert history is low volume, so the pool is small.
func (c *DatabaseConfig) SetDefaults() {
	if !c.Enabled() {
		return
	}
	if c.MaxConnections <= 0 {
		c.MaxConnections = 4
		fmt.Printf("Warning: database.max_connections not set or invalid, defaulting to %d\n", c.MaxConnections)
	}
	if c.MinConnections <= 0 {
		c.MinConnections = 1
		fmt.Printf("Warning: database.min_connections not set or invalid, defaulting to %d\n", c.MinConnections)
	}
	if c.MaxIdleTime == "" {
		c.MaxIdleTime = "30m"
		fmt.Printf("Warning: database.max_idle_time not set, defaulting to %s\n", c.MaxIdleTime)
	}
	if c.MaxLifetime == "" {
		c.MaxLifetime = "1h"
		fmt.Printf("Warning: database.max_lifetime not set, defaulting to %s\n", c.MaxLifetime)
	}
}

// Validate checks the pool limits of an enabled database
func (c *DatabaseConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.MaxConnections <= 0 {
		return fmt.Errorf("database max_connections must be positive")
	}
	if c.MinConnections < 0 {
		return fmt.Errorf("database min_connections cannot be negative")
	}
	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min_connections (%d) cannot be greater than max_connections (%d)",
			c.MinConnections, c.MaxConnections)
	}
	if _, _, err := c.Lifetimes(); err != nil {
		return err
	}
	return nil
}

// Lifetimes parses MaxIdleTime and MaxLifetime
func (c *DatabaseConfig) Lifetimes() (idle, lifetime time.Duration, err error) {
	idle, err = time.ParseDuration(c.MaxIdleTime)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid database max_idle_time '%s': %w", c.MaxIdleTime, err)
	}
	lifetime, err = time.ParseDuration(c.MaxLifetime)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid database max_lifetime '%s': %w", c.MaxLifetime, err)
	}
	return idle, lifetime, nil
}
