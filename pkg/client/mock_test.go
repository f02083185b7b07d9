package client

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

type mockDriver struct {
	mock.Mock
	fingerprint string
}

func (m *mockDriver) Prepare(ctx context.Context, query string, params domain.Params) (database.Statement, error) {
	args := m.Called(ctx, query, params)
	stmt, _ := args.Get(0).(database.Statement)
	return stmt, args.Error(1)
}

func (m *mockDriver) DescribeTable(ctx context.Context, table string) ([]domain.ColumnMetadata, error) {
	args := m.Called(ctx, table)
	rows, _ := args.Get(0).([]domain.ColumnMetadata)
	return rows, args.Error(1)
}

func (m *mockDriver) Fingerprint() string         { return m.fingerprint }
func (m *mockDriver) Dialect() domain.Dialect     { return domain.SQLite }
func (m *mockDriver) Flavor() domain.SchemaFlavor { return domain.FlavorSQLite }

func (m *mockDriver) Info() database.ConnInfo {
	return database.ConnInfo{Driver: "sqlite3", Host: "localhost", Port: 0, DBName: "app.db"}
}

func (m *mockDriver) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockDriver) Commit() error {
	return m.Called().Error(0)
}

func (m *mockDriver) Rollback() error {
	return m.Called().Error(0)
}

func (m *mockDriver) InTransaction() bool {
	return false
}

func (m *mockDriver) Close() error {
	return m.Called().Error(0)
}

type mockStatement struct {
	mock.Mock
}

func (m *mockStatement) Query(ctx context.Context) (database.Cursor, error) {
	args := m.Called(ctx)
	cur, _ := args.Get(0).(database.Cursor)
	return cur, args.Error(1)
}

func (m *mockStatement) Exec(ctx context.Context) (database.ExecResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(database.ExecResult), args.Error(1)
}

func (m *mockStatement) SQL() string  { return "" }
func (m *mockStatement) Args() []any  { return nil }
func (m *mockStatement) Close() error { return m.Called().Error(0) }

// sliceCursor serves fixed rows.
type sliceCursor struct {
	rows   []domain.Row
	closed bool
}

func (c *sliceCursor) Next(context.Context) (domain.Row, error) {
	if c.closed || len(c.rows) == 0 {
		return nil, domain.ErrNoMoreRows
	}
	row := c.rows[0]
	c.rows = c.rows[1:]
	return row, nil
}

func (c *sliceCursor) All(ctx context.Context) ([]domain.Row, error) {
	out := c.rows
	c.rows = nil
	return out, nil
}

func (c *sliceCursor) Columns() []string { return nil }

func (c *sliceCursor) Close() error {
	c.closed = true
	return nil
}

func sqliteColumn(name, typ string, pk int64) domain.ColumnMetadata {
	return domain.ColumnMetadata{"name": name, "type": typ, "pk": pk}
}

var testSchemas = map[string][]domain.ColumnMetadata{
	"users": {
		sqliteColumn("id", "INTEGER", 1),
		sqliteColumn("name", "VARCHAR(100)", 0),
		sqliteColumn("age", "INT", 0),
		sqliteColumn("active", "BOOLEAN", 0),
		sqliteColumn("born", "DATE", 0),
	},
	"roles": {
		sqliteColumn("id", "VARCHAR(32)", 1),
		sqliteColumn("name", "VARCHAR(100)", 0),
		sqliteColumn("status", "TINYINT(1)", 0),
	},
}

// newMockDriver returns a driver describing the tables of testSchemas. Unknown
// tables describe as empty.
func newMockDriver(fingerprint string) *mockDriver {
	d := &mockDriver{fingerprint: fingerprint}
	for table, rows := range testSchemas {
		d.On("DescribeTable", mock.Anything, table).Return(rows, nil).Maybe()
	}
	d.On("DescribeTable", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	return d
}
