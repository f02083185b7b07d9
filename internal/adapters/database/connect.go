package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const defaultConnectTimeout = 10 * time.Second

// OpenDB opens a pool for driverName, applies the pool settings of cfg and pings it.
func OpenDB(ctx context.Context, driverName, dsn string, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else if cfg.MaxConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxConnections / 2)
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)
	}
	if cfg.MaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)
	}

	timeout := defaultConnectTimeout
	if cfg.ConnectTimeout > 0 {
		timeout = time.Duration(cfg.ConnectTimeout) * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
