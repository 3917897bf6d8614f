package storage

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
)

// Config contains upload storage configuration.
type Config struct {
	// BasePath is the working directory that holds per-request files.
	// Default: ".data/uploads"
	BasePath string `toml:"base_path"`

	// MaxUploadSize caps the request body. Binary units: "16MB" is 16 MiB.
	MaxUploadSize string `toml:"max_upload_size"`

	// SweepInterval is how often stale files are removed. "0" disables the sweeper.
	SweepInterval string `toml:"sweep_interval"`

	// StaleAfter is the age at which an unreleased file is considered orphaned.
	StaleAfter string `toml:"stale_after"`

	maxUploadSizeVal int64
}

// Env names the environment variables that override storage settings.
type Env struct {
	BasePath      string
	MaxUploadSize string
	SweepInterval string
	StaleAfter    string
}

// MaxUploadSizeBytes returns the parsed upload cap. Valid after Finalize.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// SweepIntervalDuration parses and returns the sweep interval.
func (c *Config) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// StaleAfterDuration parses and returns the stale file age.
func (c *Config) StaleAfterDuration() time.Duration {
	d, _ := time.ParseDuration(c.StaleAfter)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if size, err := units.RAMInBytes(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
	if overlay.StaleAfter != "" {
		c.StaleAfter = overlay.StaleAfter
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/uploads"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "16MB"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "10m"
	}
	if c.StaleAfter == "" {
		c.StaleAfter = "1h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.MaxUploadSize != "" {
		if v := os.Getenv(env.MaxUploadSize); v != "" {
			c.MaxUploadSize = v
		}
	}
	if env.SweepInterval != "" {
		if v := os.Getenv(env.SweepInterval); v != "" {
			c.SweepInterval = v
		}
	}
	if env.StaleAfter != "" {
		if v := os.Getenv(env.StaleAfter); v != "" {
			c.StaleAfter = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	size, err := units.RAMInBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	interval, err := time.ParseDuration(c.SweepInterval)
	if err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	if interval < 0 {
		return fmt.Errorf("sweep_interval must not be negative")
	}

	stale, err := time.ParseDuration(c.StaleAfter)
	if err != nil {
		return fmt.Errorf("invalid stale_after: %w", err)
	}
	if stale <= 0 {
		return fmt.Errorf("stale_after must be positive")
	}

	return nil
}
