// Package config resolves storefront session settings. Defaults are
// overridden first by an optional YAML file, then by environment variables,
// so a deployment can pin everything without touching code.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/nicholasjackson/env"
	"gopkg.in/yaml.v3"
)

// Environment variables
var (
	configFile = env.String("STOREFRONT_CONFIG", false,
		"", "Path to an optional YAML config file")
	catalogPath = env.String("STOREFRONT_CATALOG", false,
		"", "Path to a catalog JSON document (empty uses the embedded seed)")
	logLevel = env.String("STOREFRONT_LOG_LEVEL", false,
		"", "Log output level [trace, debug, info, warn, error]")
)

// Config holds the resolved settings for one storefront session.
type Config struct {
	// CatalogPath points at a catalog JSON document. Empty means the
	// embedded seed catalog.
	CatalogPath string `yaml:"catalog_path"`

	// LogLevel is an hclog level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings: embedded catalog, info logging.
func Default() Config {
	return Config{
		LogLevel: "info",
	}
}

// Load resolves the configuration from defaults, the YAML file named by
// STOREFRONT_CONFIG (when set), and finally individual environment
// variables.
func Load() (Config, error) {
	if err := env.Parse(); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	cfg := Default()

	if *configFile != "" {
		raw, err := os.ReadFile(*configFile)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding config file: %w", err)
		}
	}

	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	return cfg, nil
}

// Logger builds the session's root logger from the configured level.
func (c Config) Logger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "storefront",
		Level: hclog.LevelFromString(c.LogLevel),
	})
}
