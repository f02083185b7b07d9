// Package config loads connection settings from .sqlb.yaml, SQLB_* environment
// variables and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
)

// AppFs is the filesystem configuration files are read from.
var AppFs = afero.NewOsFs()

const (
	configName = ".sqlb"
	envPrefix  = "SQLB"
)

// Config holds the application configuration.
type Config struct {
	Database DatabaseConfig
	Debug    bool
}

// DatabaseConfig holds the connection settings.
type DatabaseConfig struct {
	Provider       string
	URL            string
	MaxConnections int
	MaxIdleConns   int
	MaxLifetime    int
	MaxIdleTime    int
	ConnectTimeout int
}

// Adapter converts the settings into an adapter configuration.
func (c DatabaseConfig) Adapter() database.Config {
	return database.Config{
		Provider:       c.Provider,
		URL:            c.URL,
		MaxConnections: c.MaxConnections,
		MaxIdleConns:   c.MaxIdleConns,
		MaxIdleTime:    c.MaxIdleTime,
		MaxLifetime:    c.MaxLifetime,
		ConnectTimeout: c.ConnectTimeout,
	}
}

// Load reads the configuration. An empty configFile searches the working
// directory, the home directory and ~/.config/sqlb for .sqlb.yaml; a missing
// file there is not an error. Values from .env and .env.local are exported to
// the environment before SQLB_* variables are read, without overriding
// variables that are already set (.env.local does override .env).
func Load(configFile string) (*Config, error) {
	if err := loadEnvFile(".env", false); err != nil {
		return nil, err
	}
	if err := loadEnvFile(".env.local", true); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("max_open_conns", 0)
	v.SetDefault("max_idle_conns", 0)
	v.SetDefault("conn_max_lifetime", 0)
	v.SetDefault("conn_max_idle_time", 0)
	v.SetDefault("connect_timeout", 10)
	v.SetDefault("debug", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "sqlb"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Provider:       v.GetString("driver"),
			URL:            v.GetString("dsn"),
			MaxConnections: v.GetInt("max_open_conns"),
			MaxIdleConns:   v.GetInt("max_idle_conns"),
			MaxLifetime:    v.GetInt("conn_max_lifetime"),
			MaxIdleTime:    v.GetInt("conn_max_idle_time"),
			ConnectTimeout: v.GetInt("connect_timeout"),
		},
		Debug: v.GetBool("debug"),
	}
	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = DetectProvider(cfg.Database.URL)
	}

	return cfg, nil
}

// DetectProvider guesses the provider from the form of a DSN. It returns "" when
// the DSN gives no hint.
func DetectProvider(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(lower, "mysql://"), strings.Contains(lower, "@tcp("), strings.Contains(lower, "@unix("):
		return "mysql"
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"), lower == ":memory:",
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return "sqlite"
	}
	return ""
}

// Validate reports missing connection settings.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("no database configured: set dsn in .sqlb.yaml, SQLB_DSN or DATABASE_URL")
	}
	if c.Database.Provider == "" {
		return fmt.Errorf("cannot determine driver for dsn %q: set driver or SQLB_DRIVER", c.Database.URL)
	}
	return nil
}

func loadEnvFile(name string, override bool) error {
	f, err := AppFs.Open(name)
	if err != nil {
		// Missing env files are fine.
		return nil
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for k, val := range values {
		if _, set := os.LookupEnv(k); set && !override {
			continue
		}
		os.Setenv(k, val)
	}
	return nil
}
