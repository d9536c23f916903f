// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"
  static_dir: "www"
  uploads_dir: "www/uploads"

database:
  path: "./test.db"

admin:
  password: "hunter2"
  session_ttl: "12h"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Server.StaticDir != "www" {
		t.Errorf("Server.StaticDir = %q, want %q", cfg.Server.StaticDir, "www")
	}
	if cfg.Server.UploadsDir != "www/uploads" {
		t.Errorf("Server.UploadsDir = %q, want %q", cfg.Server.UploadsDir, "www/uploads")
	}
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}
	if cfg.Admin.Password != "hunter2" {
		t.Errorf("Admin.Password = %q, want %q", cfg.Admin.Password, "hunter2")
	}
	if cfg.Admin.SessionTTL != 12*time.Hour {
		t.Errorf("Admin.SessionTTL = %v, want %v", cfg.Admin.SessionTTL, 12*time.Hour)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
	if cfg.UsingDefaultPassword() {
		t.Error("UsingDefaultPassword() = true, want false")
	}
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, "{}\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != ":3000" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, ":3000")
	}
	if cfg.Server.StaticDir != "public" {
		t.Errorf("Server.StaticDir = %q, want %q", cfg.Server.StaticDir, "public")
	}
	if cfg.Server.UploadsDir != "public/uploads" {
		t.Errorf("Server.UploadsDir = %q, want %q", cfg.Server.UploadsDir, "public/uploads")
	}
	if cfg.Database.Path != "menu.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "menu.db")
	}
	if cfg.Admin.Password != DefaultAdminPassword {
		t.Errorf("Admin.Password = %q, want %q", cfg.Admin.Password, DefaultAdminPassword)
	}
	if cfg.Admin.SessionTTL != DefaultSessionTTL {
		t.Errorf("Admin.SessionTTL = %v, want %v", cfg.Admin.SessionTTL, DefaultSessionTTL)
	}
	if !cfg.UsingDefaultPassword() {
		t.Error("UsingDefaultPassword() = false, want true")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("MENU_TEST_PASSWORD", "from-env")

	configPath := writeConfig(t, `
admin:
  password: "${MENU_TEST_PASSWORD}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Admin.Password != "from-env" {
		t.Errorf("Admin.Password = %q, want %q", cfg.Admin.Password, "from-env")
	}
}

func TestLoad_UnsetEnvVarBecomesEmpty(t *testing.T) {
	configPath := writeConfig(t, `
admin:
  password: "${MENU_TEST_UNSET_VAR}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Empty expansion falls back to the default password
	if cfg.Admin.Password != DefaultAdminPassword {
		t.Errorf("Admin.Password = %q, want %q", cfg.Admin.Password, DefaultAdminPassword)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
admin:
  session_ttl: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() error = nil, want duration parse error")
	}
	if !strings.Contains(err.Error(), "session_ttl") {
		t.Errorf("error %q does not mention session_ttl", err)
	}
}

func TestLoad_NegativeSessionTTL(t *testing.T) {
	configPath := writeConfig(t, `
admin:
  session_ttl: "-1h"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want file read error")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "server: [not: valid\n")

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Server.HTTPAddr != ":3000" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, ":3000")
	}
}
