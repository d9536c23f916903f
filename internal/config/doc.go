// Package config handles configuration loading for diner-menu.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; every field may be
// omitted, in which case the server runs with a local SQLite file, a "public"
// static directory, and the default admin password.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	admin:
//	  password: "${MENU_ADMIN_PASSWORD}"
//
// Syntax: ${VAR_NAME}. Unset variables expand to the empty string, which
// falls through to the field's default.
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: ":3000"
//	  static_dir: "public"          # served at /
//	  uploads_dir: "public/uploads" # hero image uploads, served at /uploads
//
// Database:
//
//	database:
//	  path: "menu.db"
//
// Admin authentication:
//
//	admin:
//	  password: "${MENU_ADMIN_PASSWORD}" # plaintext or bcrypt hash
//	  session_ttl: "24h"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Usage
//
//	cfg, err := config.Load("/etc/diner-menu/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
