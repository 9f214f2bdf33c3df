// Package config holds the engine's TOML-backed configuration: Load
// seeds a Config from Default and decodes a TOML file over it with
// toml.DecodeFile.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config controls the engine's ambient behavior: queue capacities,
// logging, and the namespace used for exported stats. There are no
// required fields; Default returns a ready-to-use Config.
type Config struct {
	// InboundQueueCapacity bounds every Input created via
	// ListenQueue: the buffered channel size applying natural
	// backpressure to external producers, per §5.
	InboundQueueCapacity int `toml:"inbound-queue-capacity"`

	// InternalQueueCapacity bounds every internal fan-out lane (Input
	// and Branch outbound queues) when positive. Zero, the default,
	// keeps the unbounded internal fan-out §5 describes.
	InternalQueueCapacity int `toml:"internal-queue-capacity"`

	// LogLevel selects the minimum severity a lane or the topology
	// driver logs at: DEBUG, INFO, WARN, ERROR, or OFF.
	LogLevel string `toml:"log-level"`

	// StatsNamespace prefixes every Prometheus metric internal/stats
	// registers.
	StatsNamespace string `toml:"stats-namespace"`

	// ShutdownGracePeriodMS bounds how long TopologyHandle.Shutdown
	// waits for lanes to converge after broadcasting Exit before it
	// gives up and returns a timeout error.
	ShutdownGracePeriodMS int `toml:"shutdown-grace-period-ms"`
}

// Default returns a Config with reasonable defaults.
func Default() *Config {
	return &Config{
		InboundQueueCapacity:  64,
		InternalQueueCapacity: 0,
		LogLevel:              "INFO",
		StatsNamespace:        "arborflow",
		ShutdownGracePeriodMS: 5000,
	}
}

// Load decodes the TOML file at path into a fresh Config, seeded with
// Default's values.
func Load(path string) (*Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, errors.Wrapf(err, "config: decoding %s", path)
	}
	return c, nil
}

// ShutdownGracePeriod returns ShutdownGracePeriodMS as a time.Duration.
func (c *Config) ShutdownGracePeriod() time.Duration {
	return time.Duration(c.ShutdownGracePeriodMS) * time.Millisecond
}

// Validate reports whether c's fields are usable.
func (c *Config) Validate() error {
	if c.InboundQueueCapacity <= 0 {
		return errors.New("config: inbound-queue-capacity must be positive")
	}
	if c.InternalQueueCapacity < 0 {
		return errors.New("config: internal-queue-capacity must not be negative")
	}
	if c.ShutdownGracePeriodMS < 0 {
		return errors.New("config: shutdown-grace-period-ms must not be negative")
	}
	return nil
}
