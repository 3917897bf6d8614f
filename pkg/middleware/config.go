package middleware

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSEnv names the environment variables that override CORS settings.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	ExposedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// CORSConfig contains Cross-Origin Resource Sharing configuration.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	ExposedHeaders   []string `toml:"exposed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// Finalize applies defaults and loads environment overrides.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge applies values from overlay configuration, including boolean and array fields.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	if overlay.Origins != nil {
		c.Origins = overlay.Origins
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.ExposedHeaders != nil {
		c.ExposedHeaders = overlay.ExposedHeaders
	}
	if overlay.MaxAge > 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func (c *CORSConfig) loadDefaults() {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
}

func (c *CORSConfig) loadEnv(env *CORSEnv) {
	if v := lookup(env.Enabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := lookup(env.Origins); v != "" {
		c.Origins = splitList(v)
	}
	if v := lookup(env.AllowedMethods); v != "" {
		c.AllowedMethods = splitList(v)
	}
	if v := lookup(env.AllowedHeaders); v != "" {
		c.AllowedHeaders = splitList(v)
	}
	if v := lookup(env.ExposedHeaders); v != "" {
		c.ExposedHeaders = splitList(v)
	}
	if v := lookup(env.AllowCredentials); v != "" {
		if creds, err := strconv.ParseBool(v); err == nil {
			c.AllowCredentials = creds
		}
	}
	if v := lookup(env.MaxAge); v != "" {
		if maxAge, err := strconv.Atoi(v); err == nil {
			c.MaxAge = maxAge
		}
	}
}

// RateLimitEnv names the environment variables that override rate limit settings.
type RateLimitEnv struct {
	Requests string
	Window   string
}

// RateLimitConfig bounds requests per client IP. Zero requests disables limiting.
type RateLimitConfig struct {
	Requests int    `toml:"requests"`
	Window   string `toml:"window"`
}

// WindowDuration parses and returns the limit window.
func (c *RateLimitConfig) WindowDuration() time.Duration {
	d, _ := time.ParseDuration(c.Window)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *RateLimitConfig) Finalize(env *RateLimitEnv) error {
	if c.Window == "" {
		c.Window = "1m"
	}
	if env != nil {
		if v := lookup(env.Requests); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Requests = n
			}
		}
		if v := lookup(env.Window); v != "" {
			c.Window = v
		}
	}

	if c.Requests < 0 {
		return fmt.Errorf("requests must not be negative")
	}
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return fmt.Errorf("invalid window: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("window must be positive")
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *RateLimitConfig) Merge(overlay *RateLimitConfig) {
	if overlay.Requests != 0 {
		c.Requests = overlay.Requests
	}
	if overlay.Window != "" {
		c.Window = overlay.Window
	}
}

func lookup(key string) string {
	if key == "" {
		return ""
	}
	return os.Getenv(key)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
