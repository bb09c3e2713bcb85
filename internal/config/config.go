// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Addr        string `yaml:"addr"`
		MetricsAddr string `yaml:"metrics_addr"`
	} `yaml:"server"`

	Storage struct {
		// Dialect is "sqlite3" or "postgres"; DSN is the file path or
		// connection string. An empty dialect selects the in-memory store.
		Dialect string `yaml:"dialect"`
		DSN     string `yaml:"dsn"`
	} `yaml:"storage"`

	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		AdminUser     string `yaml:"admin_user"`
		AdminPassword string `yaml:"admin_password"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`

	Resolver struct {
		// Policy picks the variant when a generic spoken name matches
		// several inventory items: first-match, cheapest or highest-stock.
		Policy string `yaml:"policy"`
	} `yaml:"resolver"`

	Assistant struct {
		// OpenAIKey enables the LLM fallback for chat input the rule-based
		// parser cannot handle. Empty disables it.
		OpenAIKey string `yaml:"openai_key"`
		Model     string `yaml:"model"`
	} `yaml:"assistant"`

	// SeedMenu writes the default menu when the inventory collection is
	// empty or missing.
	SeedMenu bool `yaml:"seed_menu"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Server.MetricsAddr = ":9090"
	cfg.Storage.Dialect = "sqlite3"
	cfg.Storage.DSN = "khanabuddy.db"
	cfg.Auth.JWTSecret = "khanabuddy-dev-secret"
	cfg.Auth.AdminUser = "admin"
	cfg.Auth.AdminPassword = "123"
	cfg.Auth.TokenTTLHours = 12
	cfg.Resolver.Policy = "first-match"
	cfg.Assistant.Model = "gpt-4-turbo-preview"
	cfg.SeedMenu = true
	return cfg
}

// Load reads the configuration file at path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.MetricsAddr == "" {
		cfg.Server.MetricsAddr = ":9090"
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		cfg.Auth.TokenTTLHours = 12
	}
	return cfg, nil
}
