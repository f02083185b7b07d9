// Package mysql implements the MySQL database driver.
package mysql

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// DriverName is the database/sql driver name.
const DriverName = "mysql"

// Open connects to the MySQL server described by the DSN in cfg.URL.
func Open(ctx context.Context, cfg database.Config) (*database.SQLDriver, error) {
	info, fingerprint, err := ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := database.OpenDB(ctx, DriverName, strings.TrimPrefix(cfg.URL, "mysql://"), cfg)
	if err != nil {
		return nil, err
	}

	return database.NewSQLDriver(db, database.Options{
		Dialect:     domain.MySQL,
		Flavor:      domain.FlavorMySQL,
		Style:       database.QuestionMark,
		Info:        info,
		Fingerprint: fingerprint,
		Describe:    DescribeTable,
	}), nil
}

// ParseDSN extracts connection details and a password-free connection identity.
func ParseDSN(dsn string) (database.ConnInfo, string, error) {
	cfg, err := mysql.ParseDSN(strings.TrimPrefix(dsn, "mysql://"))
	if err != nil {
		return database.ConnInfo{}, "", fmt.Errorf("mysql: invalid dsn: %w", err)
	}

	info := database.ConnInfo{Driver: DriverName, DBName: cfg.DBName}
	if cfg.Net == "unix" {
		info.Host = cfg.Addr
	} else if host, port, err := net.SplitHostPort(cfg.Addr); err == nil {
		info.Host = host
		info.Port, _ = strconv.Atoi(port)
	} else {
		info.Host = cfg.Addr
	}

	identity := fmt.Sprintf("%s:%s@%s(%s)/%s", DriverName, cfg.User, cfg.Net, cfg.Addr, cfg.DBName)
	return info, identity, nil
}

// DescribeTable reads DESCRIBE rows (Field, Type, Null, Key, Default, Extra).
func DescribeTable(ctx context.Context, q database.Querier, table string) ([]domain.ColumnMetadata, error) {
	rows, err := q.QueryContext(ctx, "DESCRIBE "+quoteIdent(table))
	if err != nil {
		return nil, err
	}
	return database.ScanMetadata(ctx, rows)
}

func quoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + strings.ReplaceAll(strings.Trim(p, "`"), "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}
