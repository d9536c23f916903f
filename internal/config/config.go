// ABOUTME: Configuration loading and parsing for diner-menu
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAdminPassword is used when admin.password is not configured.
// Deployments should override it; serve logs a warning when it is in use.
const DefaultAdminPassword = "admin"

// DefaultSessionTTL is the session lifetime used when admin.session_ttl is
// not configured.
const DefaultSessionTTL = 24 * time.Hour

// Config represents the complete diner-menu configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address and file-serving configuration
type ServerConfig struct {
	HTTPAddr   string `yaml:"http_addr"`
	StaticDir  string `yaml:"static_dir"`
	UploadsDir string `yaml:"uploads_dir"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	// Password is the admin password, either plaintext or a bcrypt hash
	Password string `yaml:"password"`

	SessionTTL time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	SessionTTLRaw string `yaml:"session_ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyDefaults fills in defaults for fields left empty in the config file.
func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = ":3000"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "public"
	}
	if c.Server.UploadsDir == "" {
		c.Server.UploadsDir = "public/uploads"
	}
	if c.Database.Path == "" {
		c.Database.Path = "menu.db"
	}
	if c.Admin.Password == "" {
		c.Admin.Password = DefaultAdminPassword
	}
	if c.Admin.SessionTTL == 0 {
		c.Admin.SessionTTL = DefaultSessionTTL
	}
}

// UsingDefaultPassword reports whether the admin password was left at its
// insecure default.
func (c *Config) UsingDefaultPassword() bool {
	return c.Admin.Password == DefaultAdminPassword
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("admin.session_ttl must be positive")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Admin.SessionTTLRaw != "" {
		cfg.Admin.SessionTTL, err = time.ParseDuration(cfg.Admin.SessionTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing session_ttl %q: %w", cfg.Admin.SessionTTLRaw, err)
		}
	}

	return nil
}
