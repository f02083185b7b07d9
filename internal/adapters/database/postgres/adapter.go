// Package postgres implements the PostgreSQL database driver. Table descriptions
// are reported in the MySQL row shape (Field, Type, Key).
package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// DriverName is the database/sql driver name.
const DriverName = "postgres"

const describeQuery = `
	SELECT
		c.column_name AS "Field",
		c.data_type AS "Type",
		CASE WHEN pk.column_name IS NOT NULL THEN 'PRI' ELSE '' END AS "Key"
	FROM information_schema.columns c
	LEFT JOIN (
		SELECT k.table_schema, k.table_name, k.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage k
		  ON tc.constraint_name = k.constraint_name
		 AND tc.table_schema = k.table_schema
		 AND tc.table_name = k.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
	) pk
	  ON pk.table_schema = c.table_schema
	 AND pk.table_name = c.table_name
	 AND pk.column_name = c.column_name
	WHERE c.table_schema = current_schema() AND c.table_name = $1
	ORDER BY c.ordinal_position
`

// Open connects to the PostgreSQL server at cfg.URL (URL or key=value form).
func Open(ctx context.Context, cfg database.Config) (*database.SQLDriver, error) {
	info, fingerprint, err := ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := database.OpenDB(ctx, DriverName, cfg.URL, cfg)
	if err != nil {
		return nil, err
	}

	return database.NewSQLDriver(db, database.Options{
		Dialect:     domain.PostgreSQL,
		Flavor:      domain.FlavorMySQL,
		Style:       database.Dollar,
		Info:        info,
		Fingerprint: fingerprint,
		Describe:    DescribeTable,
	}), nil
}

// ParseDSN extracts connection details and a password-free connection identity.
func ParseDSN(dsn string) (database.ConnInfo, string, error) {
	conn := dsn
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		parsed, err := pq.ParseURL(dsn)
		if err != nil {
			return database.ConnInfo{}, "", fmt.Errorf("postgres: invalid url: %w", err)
		}
		conn = parsed
	}

	kv := parseKeyValues(conn)
	info := database.ConnInfo{
		Driver: DriverName,
		Host:   kv["host"],
		DBName: kv["dbname"],
		Port:   5432,
	}
	if info.Host == "" {
		info.Host = "localhost"
	}
	if p, err := strconv.Atoi(kv["port"]); err == nil {
		info.Port = p
	}

	identity := fmt.Sprintf("%s:%s@%s:%d/%s", DriverName, kv["user"], info.Host, info.Port, info.DBName)
	return info, identity, nil
}

// parseKeyValues reads a libpq key=value connection string. Single-quoted values
// may contain spaces and backslash escapes.
func parseKeyValues(s string) map[string]string {
	out := make(map[string]string)
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		eq := strings.IndexByte(s[i:], '=')
		if eq < 0 {
			break
		}
		key := strings.TrimSpace(s[i : i+eq])
		i += eq + 1

		var val strings.Builder
		if i < len(s) && s[i] == '\'' {
			i++
			for i < len(s) && s[i] != '\'' {
				if s[i] == '\\' && i+1 < len(s) {
					i++
				}
				val.WriteByte(s[i])
				i++
			}
			i++
		} else {
			for i < len(s) && s[i] != ' ' {
				val.WriteByte(s[i])
				i++
			}
		}
		out[key] = val.String()
	}
	return out
}

// DescribeTable reads the table's columns from information_schema.
func DescribeTable(ctx context.Context, q database.Querier, table string) ([]domain.ColumnMetadata, error) {
	rows, err := q.QueryContext(ctx, describeQuery, table)
	if err != nil {
		return nil, err
	}
	return database.ScanMetadata(ctx, rows)
}
