// Package config loads server and CLI settings from an optional TOML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/mmynk/splitledger/pkg/logging"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// EnvConfigPath names the variable holding the config file path.
const EnvConfigPath = "SPLITLEDGER_CONFIG"

// Config is the merged configuration.
type Config struct {
	Addr       string `toml:"addr"`
	LogLevel   string `toml:"log_level"`
	StaticPath string `toml:"static_path"`

	Database Database `toml:"database"`
}

// Database selects and locates the storage backend.
type Database struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Database: Database{
			Driver: DriverSQLite,
			Path:   "./data/ledger.db",
		},
	}
}

// Load reads the file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("ADDR", &c.Addr)
	set("LOG_LEVEL", &c.LogLevel)
	set("STATIC_PATH", &c.StaticPath)
	set("DB_DRIVER", &c.Database.Driver)
	set("DB_PATH", &c.Database.Path)
	set("DATABASE_URL", &c.Database.URL)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url (DATABASE_URL) is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}
