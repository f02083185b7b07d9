package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
	"github.com/satishbabariya/sqlfluent/internal/debug"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// DescribeFunc runs a dialect's describe-table query.
type DescribeFunc func(ctx context.Context, q Querier, table string) ([]domain.ColumnMetadata, error)

// Options configures a SQLDriver.
type Options struct {
	Dialect     domain.Dialect
	Flavor      domain.SchemaFlavor
	Style       PlaceholderStyle
	Info        ConnInfo
	Fingerprint string
	Describe    DescribeFunc
	// SingleConn marks a pool limited to one connection. Outside a transaction an
	// open cursor holds that connection, and other statements fail fast instead of
	// waiting for it.
	SingleConn  bool
}

// SQLDriver implements Driver on top of database/sql.
type SQLDriver struct {
	db   *sql.DB
	opts Options

	mu sync.Mutex
	tx *sql.Tx

	// cursors counts open cursors outside a transaction.
	cursors atomic.Int32
}

// NewSQLDriver wraps an open *sql.DB.
func NewSQLDriver(db *sql.DB, opts Options) *SQLDriver {
	return &SQLDriver{db: db, opts: opts}
}

// DB returns the underlying connection pool.
func (d *SQLDriver) DB() *sql.DB {
	return d.db
}

func (d *SQLDriver) conn() (Querier, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tx != nil {
		return d.tx, nil
	}
	if d.db == nil {
		return nil, domain.ErrNotConnected
	}
	if d.opts.SingleConn && d.cursors.Load() > 0 {
		return nil, domain.ErrConnectionBusy
	}
	return d.db, nil
}

// track returns the close hook of a cursor opened by s.
func (d *SQLDriver) track(s *preparedStatement) func() error {
	if !d.opts.SingleConn || s.inTx {
		return nil
	}
	d.cursors.Add(1)
	return func() error {
		d.cursors.Add(-1)
		return nil
	}
}

// Prepare binds params into query and prepares it.
func (d *SQLDriver) Prepare(ctx context.Context, query string, params domain.Params) (Statement, error) {
	text, args, err := BindNamed(query, params, d.opts.Style)
	if err != nil {
		return nil, err
	}

	q, err := d.conn()
	if err != nil {
		return nil, err
	}

	stmt, err := q.PrepareContext(ctx, text)
	if err != nil {
		return nil, domain.NewDriverError("prepare", text, err)
	}

	_, inTx := q.(*sql.Tx)
	ps := &preparedStatement{driver: d, stmt: stmt, sql: text, args: args, inTx: inTx}
	debug.Debug("prepared statement", "dialect", d.opts.Dialect, "sql", text, "args", len(args))
	return ps, nil
}

// DescribeTable runs the dialect's describe-table query.
func (d *SQLDriver) DescribeTable(ctx context.Context, table string) ([]domain.ColumnMetadata, error) {
	if d.opts.Describe == nil {
		return nil, nil
	}
	q, err := d.conn()
	if err != nil {
		return nil, err
	}
	rows, err := d.opts.Describe(ctx, q, table)
	if err != nil {
		return nil, domain.NewDriverError("describe", table, err)
	}
	return rows, nil
}

// Fingerprint identifies the connection.
func (d *SQLDriver) Fingerprint() string {
	return d.opts.Fingerprint
}

// Dialect returns the SQL dialect.
func (d *SQLDriver) Dialect() domain.Dialect {
	return d.opts.Dialect
}

// Flavor returns the describe-row flavor.
func (d *SQLDriver) Flavor() domain.SchemaFlavor {
	return d.opts.Flavor
}

// Info returns connection details.
func (d *SQLDriver) Info() ConnInfo {
	return d.opts.Info
}

// Begin starts a transaction.
func (d *SQLDriver) Begin(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return domain.ErrNotConnected
	}
	if d.tx != nil {
		return fmt.Errorf("transaction already active")
	}
	if d.opts.SingleConn && d.cursors.Load() > 0 {
		return domain.ErrConnectionBusy
	}
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewDriverError("begin", "", err)
	}
	d.tx = tx
	return nil
}

// Commit commits the active transaction.
func (d *SQLDriver) Commit() error {
	return d.finish("commit", func(tx *sql.Tx) error { return tx.Commit() })
}

// Rollback rolls back the active transaction.
func (d *SQLDriver) Rollback() error {
	return d.finish("rollback", func(tx *sql.Tx) error { return tx.Rollback() })
}

func (d *SQLDriver) finish(op string, fn func(*sql.Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tx == nil {
		return domain.ErrNoTransaction
	}
	tx := d.tx
	d.tx = nil
	if err := fn(tx); err != nil {
		return domain.NewDriverError(op, "", err)
	}
	return nil
}

// InTransaction reports whether a transaction is active.
func (d *SQLDriver) InTransaction() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tx != nil
}

// Close closes the connection pool.
func (d *SQLDriver) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// preparedStatement implements Statement.
type preparedStatement struct {
	driver *SQLDriver
	stmt   *sql.Stmt
	sql    string
	args   []any
	inTx   bool
}

// Query runs the statement and returns a cursor.
func (s *preparedStatement) Query(ctx context.Context) (Cursor, error) {
	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, domain.NewDriverError("query", s.sql, err)
	}
	return newRowsCursor(rows, s.driver.track(s))
}

// Exec runs the statement.
func (s *preparedStatement) Exec(ctx context.Context) (ExecResult, error) {
	res, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return ExecResult{}, domain.NewDriverError("execute", s.sql, err)
	}

	var out ExecResult
	if n, err := res.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	// Not every driver reports insert ids.
	if id, err := res.LastInsertId(); err == nil {
		out.LastInsertID = id
	}
	return out, nil
}

// SQL returns the positional SQL text.
func (s *preparedStatement) SQL() string {
	return s.sql
}

// Args returns the bound arguments.
func (s *preparedStatement) Args() []any {
	return s.args
}

// Close releases the prepared statement.
func (s *preparedStatement) Close() error {
	return s.stmt.Close()
}

// ScanMetadata reads every row of rows as column metadata and closes rows.
func ScanMetadata(ctx context.Context, rows *sql.Rows) ([]domain.ColumnMetadata, error) {
	return scanAll(ctx, rows)
}

var (
	_ Driver    = (*SQLDriver)(nil)
	_ Statement = (*preparedStatement)(nil)
	_ Cursor    = (*rowsCursor)(nil)
)
