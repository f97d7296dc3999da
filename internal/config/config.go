// Package config loads service configuration. Precedence, lowest to
// highest: built-in defaults, optional YAML config file, environment
// variables (with an optional .env file loaded first).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// RedisConfig holds cache backend settings.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// SnapshotConfig holds snapshot persistence settings.
type SnapshotConfig struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// Load builds the configuration. configPath may be empty; a missing
// config file is not an error, a malformed one is.
func Load(configPath string) (*Config, error) {
	// Best-effort .env for local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:        ":8000",
			CORSOrigins: []string{"*"},
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379",
		},
		Snapshot: SnapshotConfig{
			Path:    "sports_data.db",
			Enabled: true,
		},
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Server.Addr = getEnv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)
	cfg.Snapshot.Path = getEnv("SNAPSHOT_PATH", cfg.Snapshot.Path)
	if v := os.Getenv("SNAPSHOT_ENABLED"); v != "" {
		cfg.Snapshot.Enabled = v == "true" || v == "1"
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
