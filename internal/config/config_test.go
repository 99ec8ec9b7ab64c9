package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Name != "Fivetran-MCP" {
		t.Errorf("expected server name Fivetran-MCP, got %s", cfg.Server.Name)
	}
	if cfg.Fivetran.BaseURL != "https://api.fivetran.com" {
		t.Errorf("expected default base URL, got %s", cfg.Fivetran.BaseURL)
	}
	if cfg.Fivetran.AllowWrites {
		t.Error("expected writes disabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fivetran.BaseURL != "https://api.fivetran.com" {
		t.Errorf("expected defaults, got %s", cfg.Fivetran.BaseURL)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fivetran-mcp.toml")
	content := `
[server]
name = "Custom-MCP"
port = "9999"

[fivetran]
api_key = "file-key"
api_secret = "file-secret"
allow_writes = true
base_url = "https://api.example.com"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Name != "Custom-MCP" {
		t.Errorf("expected Custom-MCP, got %s", cfg.Server.Name)
	}
	if cfg.Fivetran.APIKey != "file-key" {
		t.Errorf("expected file-key, got %s", cfg.Fivetran.APIKey)
	}
	if !cfg.Fivetran.AllowWrites {
		t.Error("expected writes enabled from file")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[fivetran\napi_key ="), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FIVETRAN_API_KEY", "env-key")
	t.Setenv("FIVETRAN_API_SECRET", "env-secret")
	t.Setenv("FIVETRAN_ALLOW_WRITES", "TRUE")
	t.Setenv("FIVETRAN_BASE_URL", "https://env.example.com")
	t.Setenv("FIVETRAN_MCP_PORT", "4444")
	t.Setenv("FIVETRAN_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fivetran.APIKey != "env-key" || cfg.Fivetran.APISecret != "env-secret" {
		t.Errorf("expected env credentials, got %s/%s", cfg.Fivetran.APIKey, cfg.Fivetran.APISecret)
	}
	if !cfg.Fivetran.AllowWrites {
		t.Error("expected FIVETRAN_ALLOW_WRITES=TRUE to enable writes")
	}
	if cfg.Fivetran.BaseURL != "https://env.example.com" {
		t.Errorf("expected env base URL, got %s", cfg.Fivetran.BaseURL)
	}
	if cfg.Server.Port != "4444" {
		t.Errorf("expected port 4444, got %s", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected warn level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvAllowWritesFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fivetran-mcp.toml")
	if err := os.WriteFile(path, []byte("[fivetran]\nallow_writes = true\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("FIVETRAN_ALLOW_WRITES", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fivetran.AllowWrites {
		t.Error("expected env override to disable writes")
	}
}
