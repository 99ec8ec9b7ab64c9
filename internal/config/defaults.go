package config

import "github.com/fivetran/fivetran-mcp/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "Fivetran-MCP",
			Port: "4250",
		},
		Fivetran: FivetranConfig{
			BaseURL: "https://api.fivetran.com",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/fivetran-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
