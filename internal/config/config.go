package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. Values come from the YAML
// file first, then environment variables override.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Identity IdentityConfig `yaml:"identity"`
	Search   SearchConfig   `yaml:"search"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        string   `yaml:"port" env:"PORT"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

// DatabaseConfig contains catalogue database settings.
type DatabaseConfig struct {
	Type   string       `yaml:"type" env:"DB_TYPE"` // "mysql" or "sqlite"
	MySQL  MySQLConfig  `yaml:"mysql"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// MySQLConfig contains MySQL connection settings.
type MySQLConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     string `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Database string `yaml:"database" env:"DB_NAME"`
}

// SQLiteConfig contains SQLite settings (dev/tests).
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH"`
}

// IdentityConfig points at the external identity store.
type IdentityConfig struct {
	Driver string `yaml:"driver" env:"IDENTITY_DRIVER"` // "postgres" or "sqlite3"
	DSN    string `yaml:"dsn" env:"IDENTITY_DSN"`
}

// SearchConfig contains Meilisearch settings.
type SearchConfig struct {
	Enabled bool   `yaml:"enabled" env:"SEARCH_ENABLED"`
	Host    string `yaml:"host" env:"MEILISEARCH_HOST"`
	APIKey  string `yaml:"api_key" env:"MEILISEARCH_KEY"`
}

// StorageConfig contains file storage settings.
type StorageConfig struct {
	Root string `yaml:"root" env:"STORAGE_ROOT"`
}

// AuthConfig contains JWT settings.
type AuthConfig struct {
	Secret      string `yaml:"secret" env:"JWT_SECRET"`
	TTLMinutes  int    `yaml:"ttl_minutes" env:"JWT_TTL_MINUTES"`
}

// CleanupConfig contains retention cleanup settings.
type CleanupConfig struct {
	DailyRunEnabled  bool   `yaml:"daily_run_enabled" env:"CLEANUP_ENABLED"`
	DailyRunTime     string `yaml:"daily_run_time" env:"CLEANUP_TIME"`
	RetentionDays    int    `yaml:"retention_days" env:"CLEANUP_RETENTION_DAYS"`
	MaxDeletionCount int    `yaml:"max_deletion_count" env:"CLEANUP_MAX_DELETIONS"`
}

// DefaultConfig returns default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			SQLite: SQLiteConfig{
				Path: "realestate.db",
			},
			MySQL: MySQLConfig{
				Host:     "mysql",
				Port:     "3306",
				User:     "realestate_user",
				Password: "realestate_pass",
				Database: "realestate_db",
			},
		},
		Identity: IdentityConfig{
			Driver: "sqlite3",
			DSN:    "identity.db",
		},
		Search: SearchConfig{
			Enabled: false,
			Host:    "http://meilisearch:7700",
		},
		Storage: StorageConfig{
			Root: "uploads",
		},
		Auth: AuthConfig{
			Secret:     "change-me",
			TTLMinutes: 60,
		},
		Cleanup: CleanupConfig{
			DailyRunEnabled:  false,
			DailyRunTime:     "03:00",
			RetentionDays:    90,
			MaxDeletionCount: 10000,
		},
	}
}

// LoadConfig loads configuration: defaults, then the YAML file if present,
// then environment overrides.
func LoadConfig(filepath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}
