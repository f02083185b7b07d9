package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/satishbabariya/sqlfluent/internal/core/query/compiler"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
	"github.com/satishbabariya/sqlfluent/internal/debug"
)

// rowKeywords start raw statements that return rows.
var rowKeywords = []string{"SELECT", "WITH", "PRAGMA", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "VALUES"}

// GetSQL compiles the current statement. It returns "" when no statement was started.
func (b *Builder) GetSQL() string {
	return compiler.Compile(b.stmt)
}

// GetColumns returns the column names of the current statement.
func (b *Builder) GetColumns() []string {
	return b.stmt.ColumnNames()
}

// GetParams returns a copy of the bound parameters.
func (b *Builder) GetParams() Params {
	return b.stmt.Params.Clone()
}

// Execute compiles the statement and runs it. Row-returning statements leave a
// cursor open for Fetch; other statements record RowsAffected and LastInsertID.
func (b *Builder) Execute(ctx context.Context) error {
	if b.stmt.Operation == domain.OpNone {
		return ErrNoOperation
	}
	if b.err != nil {
		return b.err
	}
	if b.driver == nil {
		return domain.ErrNotConnected
	}
	b.release()

	sql := b.GetSQL()
	prepared, err := b.driver.Prepare(ctx, sql, b.stmt.Params)
	if err != nil {
		return err
	}
	debug.Debug("executing statement", "operation", b.stmt.Operation, "sql", prepared.SQL(), "args", prepared.Args())

	if b.returnsRows() {
		cursor, err := prepared.Query(ctx)
		if err != nil {
			prepared.Close()
			return err
		}
		b.prepared = prepared
		b.cursor = cursor
		return nil
	}

	defer prepared.Close()
	res, err := prepared.Exec(ctx)
	if err != nil {
		return err
	}
	b.result = res
	debug.Debug("statement executed", "operation", b.stmt.Operation, "rows_affected", res.RowsAffected)
	return nil
}

// ExecuteQuietly runs Execute and swallows the error, logging it as a warning.
// It reports whether the statement succeeded.
func (b *Builder) ExecuteQuietly(ctx context.Context) bool {
	if err := b.Execute(ctx); err != nil {
		debug.Warn("statement failed", "sql", b.GetSQL(), "error", err)
		return false
	}
	return true
}

func (b *Builder) returnsRows() bool {
	if b.stmt.Operation.IsSelect() {
		return true
	}
	if b.stmt.Operation != domain.OpRawQuery {
		return false
	}

	text := strings.TrimLeft(b.stmt.RawQuery, " \t\r\n(")
	end := strings.IndexFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	if end >= 0 {
		text = text[:end]
	}
	for _, kw := range rowKeywords {
		if strings.EqualFold(text, kw) {
			return true
		}
	}
	return false
}

// Fetch returns the next row, executing the statement first when no result is open.
// It returns ErrNoMoreRows once the rows are exhausted.
func (b *Builder) Fetch(ctx context.Context) (Row, error) {
	if b.cursor == nil {
		if err := b.Execute(ctx); err != nil {
			return nil, err
		}
		if b.cursor == nil {
			return nil, ErrNotExecuted
		}
	}

	row, err := b.cursor.Next(ctx)
	if errors.Is(err, domain.ErrNoMoreRows) {
		b.release()
	}
	return row, err
}

// FetchAll returns every remaining row, executing the statement first when no
// result is open.
func (b *Builder) FetchAll(ctx context.Context) ([]Row, error) {
	if b.cursor == nil {
		if err := b.Execute(ctx); err != nil {
			return nil, err
		}
		if b.cursor == nil {
			return nil, ErrNotExecuted
		}
	}
	defer b.release()

	return b.cursor.All(ctx)
}

// FetchObject decodes the next row into dest, a pointer to a struct or map.
// Struct fields are matched by their `db` tag, or by name when untagged.
func (b *Builder) FetchObject(ctx context.Context, dest any) error {
	row, err := b.Fetch(ctx)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		Result:           dest,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc("2006-01-02 15:04:05"),
		),
	})
	if err != nil {
		return fmt.Errorf("fetch object: %w", err)
	}
	if err := decoder.Decode(map[string]any(row)); err != nil {
		return fmt.Errorf("fetch object: %w", err)
	}
	return nil
}

// ResultColumns returns the column names of the open result, or nil when no
// row-returning statement is open.
func (b *Builder) ResultColumns() []string {
	if b.cursor == nil {
		return nil
	}
	return b.cursor.Columns()
}

// RowsAffected returns the rows affected by the last non-row statement.
func (b *Builder) RowsAffected() int64 {
	return b.result.RowsAffected
}

// LastInsertID returns the id generated by the last INSERT, if the driver reports one.
func (b *Builder) LastInsertID() int64 {
	return b.result.LastInsertID
}

// Begin starts a transaction on the driver. Every following statement of every
// builder sharing the driver runs in it until Commit or Rollback.
func (b *Builder) Begin(ctx context.Context) error {
	if b.driver == nil {
		return domain.ErrNotConnected
	}
	b.release()
	return b.driver.Begin(ctx)
}

// Commit commits the transaction.
func (b *Builder) Commit() error {
	if b.driver == nil {
		return domain.ErrNotConnected
	}
	b.release()
	return b.driver.Commit()
}

// Rollback rolls back the transaction.
func (b *Builder) Rollback() error {
	if b.driver == nil {
		return domain.ErrNotConnected
	}
	b.release()
	return b.driver.Rollback()
}

// Close releases any open result. The driver stays open.
func (b *Builder) Close() error {
	return b.release()
}

// release closes the open cursor and prepared statement.
func (b *Builder) release() error {
	var errs []error
	if b.cursor != nil {
		errs = append(errs, b.cursor.Close())
		b.cursor = nil
	}
	if b.prepared != nil {
		errs = append(errs, b.prepared.Close())
		b.prepared = nil
	}
	return errors.Join(errs...)
}

// DBName returns the database name of the connection.
func (b *Builder) DBName() string {
	return b.info().DBName
}

// Driver returns the driver name of the connection.
func (b *Builder) Driver() string {
	return b.info().Driver
}

// Host returns the host of the connection.
func (b *Builder) Host() string {
	return b.info().Host
}

// Port returns the port of the connection.
func (b *Builder) Port() int {
	return b.info().Port
}

func (b *Builder) info() ConnInfo {
	if b.driver == nil {
		return ConnInfo{}
	}
	return b.driver.Info()
}
