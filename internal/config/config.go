// Package config loads fivetran-mcp configuration with priority:
// defaults -> TOML file -> FIVETRAN_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/fivetran/fivetran-mcp/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig         `toml:"server"`
	Fivetran FivetranConfig       `toml:"fivetran"`
	Logging  common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// FivetranConfig contains upstream API credentials and access policy.
// Read once at startup; read-only afterwards.
type FivetranConfig struct {
	APIKey      string `toml:"api_key"`
	APISecret   string `toml:"api_secret"`
	AllowWrites bool   `toml:"allow_writes"`
	BaseURL     string `toml:"base_url"`
}

// Load loads configuration from a TOML file with defaults and env overrides.
// A missing file is not an error — defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			// File not found — use defaults
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies FIVETRAN_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if key := os.Getenv("FIVETRAN_API_KEY"); key != "" {
		cfg.Fivetran.APIKey = key
	}
	if secret := os.Getenv("FIVETRAN_API_SECRET"); secret != "" {
		cfg.Fivetran.APISecret = secret
	}
	if writes := os.Getenv("FIVETRAN_ALLOW_WRITES"); writes != "" {
		cfg.Fivetran.AllowWrites = strings.EqualFold(writes, "true")
	}
	if url := os.Getenv("FIVETRAN_BASE_URL"); url != "" {
		cfg.Fivetran.BaseURL = url
	}
	if port := os.Getenv("FIVETRAN_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("FIVETRAN_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
