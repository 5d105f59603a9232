package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	DatabaseTypeSQLite     DatabaseType = "sqlite"
	DatabaseTypePostgreSQL DatabaseType = "postgres"
)

// DatabaseConfig describes the database that backs the session store.
type DatabaseConfig struct {
	Type     DatabaseType `env:"PARTY_DB_TYPE, default=sqlite"`
	Path     string       `env:"PARTY_DB_PATH"`
	Host     string       `env:"PARTY_DB_HOST, default=localhost"`
	Port     int          `env:"PARTY_DB_PORT, default=5432"`
	Name     string       `env:"PARTY_DB_NAME, default=party_panel"`
	Username string       `env:"PARTY_DB_USER, default=party_panel"`
	Password string       `env:"PARTY_DB_PASSWORD"`
	SSLMode  string       `env:"PARTY_DB_SSLMODE, default=disable"`
	TimeZone string       `env:"PARTY_DB_TIMEZONE, default=UTC"`
}

// GetDSN returns the data source name for the database
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case DatabaseTypePostgreSQL:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
			c.Host,
			c.Username,
			c.Password,
			c.Name,
			c.Port,
			c.SSLMode,
			c.TimeZone,
		)
	default:
		return c.SQLitePath()
	}
}

// SQLitePath returns the configured sqlite file or the default location.
func (c *DatabaseConfig) SQLitePath() string {
	if c.Path != "" {
		return c.Path
	}
	if IsDebug() {
		return "db/party-panel.db"
	}
	return "/etc/party-panel/party-panel.db"
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
	case DatabaseTypePostgreSQL:
		if c.Host == "" {
			return fmt.Errorf("PostgreSQL host cannot be empty")
		}
		if c.Name == "" {
			return fmt.Errorf("PostgreSQL database name cannot be empty")
		}
		if c.Username == "" {
			return fmt.Errorf("PostgreSQL username cannot be empty")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("PostgreSQL port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

// IsPostgreSQL returns true if the database type is PostgreSQL
func (c *DatabaseConfig) IsPostgreSQL() bool {
	return c.Type == DatabaseTypePostgreSQL
}

// EnsureDirectoryExists ensures the directory for SQLite database exists
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.Type == DatabaseTypeSQLite {
		return os.MkdirAll(filepath.Dir(c.SQLitePath()), 0o755)
	}
	return nil
}
