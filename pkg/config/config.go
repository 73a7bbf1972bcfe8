package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the full application configuration.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	Logger   LoggerConfig   `koanf:"logger"`
	Google   GoogleConfig   `koanf:"google"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"` // development, production
}

// DatabaseConfig contains the SQLite store settings.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level       string `koanf:"level"`  // debug, info, warn, error
	Format      string `koanf:"format"` // json, console
	Development bool   `koanf:"development"`
}

// GoogleConfig contains the OAuth client settings for the login flow.
// Login is disabled when ClientID is empty.
type GoogleConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "cinefilmes",
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path: "cine_filmes.db",
		},
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			Development: true,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logger.Level)
	}
	return nil
}

// Load loads configuration from defaults, optional yaml files and
// CINEFILMES_-prefixed environment variables, in that precedence order.
func Load() (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	for _, path := range configPaths() {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider("CINEFILMES_", ".", func(s string) string {
		// CINEFILMES_GOOGLE_CLIENT_ID -> google.client_id
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CINEFILMES_")), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// MustLoad loads the configuration or exits. Intended for composition roots.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// configPaths returns the yaml files consulted, lowest precedence first.
func configPaths() []string {
	paths := []string{"config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cinefilmes", "config.yaml"))
	}
	return paths
}
