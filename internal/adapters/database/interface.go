// Package database defines the database driver collaborator used by the builder
// and a database/sql based implementation shared by the dialect adapters.
package database

import (
	"context"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// Driver is the database driver collaborator.
type Driver interface {
	// Prepare binds params into query and prepares it on the connection.
	Prepare(ctx context.Context, query string, params domain.Params) (Statement, error)

	// DescribeTable returns the raw column metadata of table. An empty result means not found.
	DescribeTable(ctx context.Context, table string) ([]domain.ColumnMetadata, error)

	// Fingerprint identifies the connection for schema caching.
	Fingerprint() string

	// Dialect returns the SQL dialect.
	Dialect() domain.Dialect

	// Flavor returns the shape of the rows produced by DescribeTable.
	Flavor() domain.SchemaFlavor

	// Info returns connection details.
	Info() ConnInfo

	// Begin starts a transaction used by every following statement.
	Begin(ctx context.Context) error

	// Commit commits the active transaction.
	Commit() error

	// Rollback rolls back the active transaction.
	Rollback() error

	// InTransaction reports whether a transaction is active.
	InTransaction() bool

	// Close closes the connection.
	Close() error
}

// Statement is a prepared statement with its arguments bound.
type Statement interface {
	// Query runs a row-returning statement.
	Query(ctx context.Context) (Cursor, error)

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context) (ExecResult, error)

	// SQL returns the statement text sent to the driver.
	SQL() string

	// Args returns the positional arguments sent to the driver.
	Args() []any

	// Close releases the prepared statement.
	Close() error
}

// Cursor iterates result rows.
type Cursor interface {
	// Next returns the next row or domain.ErrNoMoreRows.
	Next(ctx context.Context) (domain.Row, error)

	// All returns every remaining row.
	All(ctx context.Context) ([]domain.Row, error)

	// Columns returns the result column names.
	Columns() []string

	// Close releases the cursor.
	Close() error
}

// ExecResult summarizes a statement that returned no rows.
type ExecResult struct {
	RowsAffected int64
	LastInsertID int64
}

// ConnInfo describes the connection.
type ConnInfo struct {
	Driver string
	Host   string
	Port   int
	DBName string
}

// Config holds database connection configuration.
type Config struct {
	Provider       string
	URL            string
	MaxConnections int
	MaxIdleConns   int
	MaxIdleTime    int // seconds
	MaxLifetime    int // seconds
	ConnectTimeout int // seconds
}
