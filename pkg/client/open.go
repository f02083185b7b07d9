package client

import (
	"context"

	"github.com/satishbabariya/sqlfluent/internal/utils/container"
)

// Open connects to the database described by cfg and returns a builder on it.
// cfg.Provider is one of "sqlite", "mysql" or "postgres". Close the connection
// with Builder.Disconnect.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Builder, error) {
	driver, err := container.OpenDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(driver, append([]Option{WithContext(ctx)}, opts...)...), nil
}

// Disconnect releases any open result and closes the driver connection.
func (b *Builder) Disconnect() error {
	b.release()
	if b.driver == nil {
		return nil
	}
	return b.driver.Close()
}
