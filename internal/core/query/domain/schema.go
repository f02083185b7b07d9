package domain

// Dialect is the SQL flavor spoken by a driver.
type Dialect string

const (
	// SQLite dialect.
	SQLite Dialect = "sqlite"
	// MySQL dialect.
	MySQL Dialect = "mysql"
	// PostgreSQL dialect.
	PostgreSQL Dialect = "postgres"
)

// SchemaFlavor selects how raw describe-table rows are read.
type SchemaFlavor int

const (
	// FlavorSQLite rows carry name, type and pk keys (PRAGMA table_info).
	FlavorSQLite SchemaFlavor = iota
	// FlavorMySQL rows carry Field, Type and Key keys (DESCRIBE).
	FlavorMySQL
)

// ColumnMetadata is one raw row returned by a driver's describe-table query.
type ColumnMetadata map[string]any

// ColumnType is a normalized column description.
type ColumnType struct {
	Name         string
	DeclaredType string
	ParamType    ParamType
}

// TableSchema is the normalized structure of a table. It is immutable once cached.
type TableSchema struct {
	Table      string
	PrimaryKey *ColumnType
	Columns    map[string]ColumnType
	Order      []string
}

// Column looks up a column by name.
func (t *TableSchema) Column(name string) (ColumnType, bool) {
	if t == nil {
		return ColumnType{}, false
	}
	c, ok := t.Columns[name]
	return c, ok
}

// PrimaryKeyName returns the primary key column name, or "" when there is none.
func (t *TableSchema) PrimaryKeyName() string {
	if t == nil || t.PrimaryKey == nil {
		return ""
	}
	return t.PrimaryKey.Name
}
