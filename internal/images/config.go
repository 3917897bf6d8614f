package images

import (
	"fmt"
	"os"
	"strconv"
)

// Env names the environment variables that override conversion settings.
type Env struct {
	DPI       string
	MaxPixels string
}

// Config controls image to PDF conversion.
type Config struct {
	// DPI is the nominal resolution used to size the PDF page. Default: 100
	DPI int `toml:"dpi"`

	// MaxPixels bounds width*height of an accepted image. Default: 64000000
	MaxPixels int `toml:"max_pixels"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
	if overlay.MaxPixels != 0 {
		c.MaxPixels = overlay.MaxPixels
	}
}

func (c *Config) loadDefaults() {
	if c.DPI == 0 {
		c.DPI = 100
	}
	if c.MaxPixels == 0 {
		c.MaxPixels = 64_000_000
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.DPI != "" {
		if v := os.Getenv(env.DPI); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DPI = n
			}
		}
	}
	if env.MaxPixels != "" {
		if v := os.Getenv(env.MaxPixels); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxPixels = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.DPI < 1 {
		return fmt.Errorf("dpi must be positive")
	}
	if c.MaxPixels < 1 {
		return fmt.Errorf("max_pixels must be positive")
	}
	return nil
}
