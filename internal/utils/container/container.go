// Package container wires configuration, database drivers and the shared schema cache.
package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
	"github.com/satishbabariya/sqlfluent/internal/adapters/database/mysql"
	"github.com/satishbabariya/sqlfluent/internal/adapters/database/postgres"
	"github.com/satishbabariya/sqlfluent/internal/adapters/database/sqlite"
	"github.com/satishbabariya/sqlfluent/internal/config"
	"github.com/satishbabariya/sqlfluent/internal/core/schema"
	"github.com/satishbabariya/sqlfluent/internal/debug"
)

// Container holds the dependencies shared by every builder of one connection.
type Container struct {
	config *config.Config
	driver database.Driver
	cache  *schema.Cache
}

// NewContainer opens the configured database.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	driver, err := OpenDriver(ctx, cfg.Database.Adapter())
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	return &Container{
		config: cfg,
		driver: driver,
		cache:  schema.NewCache(),
	}, nil
}

// Config returns the loaded configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Driver returns the open database driver.
func (c *Container) Driver() database.Driver {
	return c.driver
}

// SchemaCache returns the schema cache shared by builders of this container.
func (c *Container) SchemaCache() *schema.Cache {
	return c.cache
}

// Close closes the database connection.
func (c *Container) Close() error {
	if c.driver != nil {
		return c.driver.Close()
	}
	return nil
}

// OpenDriver opens the driver matching cfg.Provider.
func OpenDriver(ctx context.Context, cfg database.Config) (database.Driver, error) {
	var (
		driver database.Driver
		err    error
	)

	switch strings.ToLower(cfg.Provider) {
	case "postgresql", "postgres":
		driver, err = postgres.Open(ctx, cfg)
	case "mysql", "mariadb":
		driver, err = mysql.Open(ctx, cfg)
	case "sqlite", "sqlite3":
		driver, err = sqlite.Open(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Provider, err)
	}

	info := driver.Info()
	debug.Debug("connected", "driver", info.Driver, "host", info.Host, "dbname", info.DBName)
	return driver, nil
}
