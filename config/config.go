// Package config loads the service configuration from TOML files with
// environment specific overlays and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/vitalvas/swagdoc/logging"
)

const (
	// DefaultConfigFile is read when no path is given.
	DefaultConfigFile = "config.toml"

	// EnvPrefix starts every environment variable the configuration reads.
	EnvPrefix = "SWAGDOC_"

	// EnvServiceEnv selects the overlay file: config.<env>.toml next to the
	// base file.
	EnvServiceEnv = EnvPrefix + "ENV"

	EnvLogLevel  = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat = EnvPrefix + "LOG_FORMAT"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig   `toml:"server"`
	Logging logging.Config `toml:"logging"`
	Swagger SwaggerConfig  `toml:"swagger"`
}

// Load reads the configuration at path and applies the overlay selected by
// SWAGDOC_ENV when it exists. The result still needs Finalize.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if overlay := overlayPath(path); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	return cfg, nil
}

// Parse decodes a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Finalize applies defaults and environment overrides, then validates every
// section.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(&logging.Env{Level: EnvLogLevel, Format: EnvLogFormat}); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Swagger.Finalize(); err != nil {
		return fmt.Errorf("swagger: %w", err)
	}
	return nil
}

// Merge applies the non-zero values of overlay.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Swagger.Merge(&overlay.Swagger)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath(base string) string {
	env := os.Getenv(EnvServiceEnv)
	if env == "" {
		return ""
	}

	ext := filepath.Ext(base)
	path := strings.TrimSuffix(base, ext) + "." + env + ext
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
