// Package sqlite implements the SQLite database driver.
package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// DriverName is the database/sql driver name.
const DriverName = "sqlite3"

// memoryConns numbers in-memory connections so each one gets its own fingerprint.
var memoryConns atomic.Int64

// Open connects to the SQLite database at cfg.URL.
//
// An in-memory database lives in a single connection, so its pool is limited to
// one connection and a statement issued while a cursor holds it fails with
// domain.ErrConnectionBusy. File databases use the configured pool in WAL mode,
// where readers do not block writers.
func Open(ctx context.Context, cfg database.Config) (*database.SQLDriver, error) {
	dsn := strings.TrimPrefix(cfg.URL, "sqlite://")
	path := strings.TrimPrefix(dsn, "file:")
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty database path")
	}

	memory := isMemory(path, dsn)
	// Foreign keys are disabled by default in SQLite; the DSN enables them on every connection.
	dsn = withParam(dsn, "_foreign_keys", "1", "_fk")
	if memory {
		cfg.MaxConnections = 1
		cfg.MaxIdleConns = 1
	} else {
		dsn = withParam(dsn, "_journal_mode", "WAL", "_journal")
	}

	db, err := database.OpenDB(ctx, DriverName, dsn, cfg)
	if err != nil {
		return nil, err
	}

	name := path
	fingerprint := DriverName + ":" + path
	if memory {
		fingerprint += "#" + strconv.FormatInt(memoryConns.Add(1), 10)
	} else if abs, err := filepath.Abs(path); err == nil {
		name = abs
		fingerprint = DriverName + ":" + abs
	}

	return database.NewSQLDriver(db, database.Options{
		Dialect:     domain.SQLite,
		Flavor:      domain.FlavorSQLite,
		Style:       database.QuestionMark,
		Info:        database.ConnInfo{Driver: DriverName, DBName: name},
		Fingerprint: fingerprint,
		Describe:    DescribeTable,
		SingleConn:  memory,
	}), nil
}

func isMemory(path, dsn string) bool {
	return path == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// withParam appends key=value to the DSN query unless key or one of its aliases is set.
func withParam(dsn, key, value string, aliases ...string) string {
	query := ""
	if idx := strings.IndexByte(dsn, '?'); idx >= 0 {
		query = dsn[idx+1:]
	}
	for _, pair := range strings.Split(query, "&") {
		name, _, _ := strings.Cut(pair, "=")
		if name == key || slices.Contains(aliases, name) {
			return dsn
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + value
}

// DescribeTable reads PRAGMA table_info rows (cid, name, type, notnull, dflt_value, pk).
func DescribeTable(ctx context.Context, q database.Querier, table string) ([]domain.ColumnMetadata, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	return database.ScanMetadata(ctx, rows)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
