package client

import (
	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
	"github.com/satishbabariya/sqlfluent/internal/core/query/where"
	"github.com/satishbabariya/sqlfluent/internal/core/schema"
)

type (
	// Raw is SQL text spliced into the statement verbatim.
	Raw = domain.Raw
	// Typed binds a value with an explicit parameter type.
	Typed = domain.Typed
	// Field is a column/value pair for writes.
	Field = domain.Field
	// ColumnSpec is one aliased SELECT column.
	ColumnSpec = domain.ColumnSpec
	// Join is a JOIN attached to a FROM table.
	Join = domain.Join
	// Group is a nested WHERE group.
	Group = domain.Group
	// Row is one result row.
	Row = domain.Row
	// Params maps parameter names to bindings.
	Params = domain.Params
	// Binding is a bound value and its type.
	Binding = domain.Binding
	// ParamType is the driver type tag of a binding.
	ParamType = domain.ParamType
	// Condition is one Match condition.
	Condition = where.Condition

	// Driver is the database driver a Builder runs on.
	Driver = database.Driver
	// Config configures Open.
	Config = database.Config
	// SchemaCache caches table descriptions across builders.
	SchemaCache = schema.Cache
)

// Parameter types.
const (
	ParamNull   = domain.ParamNull
	ParamBool   = domain.ParamBool
	ParamInt    = domain.ParamInt
	ParamString = domain.ParamString
)

// Boolean operators for WHERE groups.
const (
	And = domain.And
	Or  = domain.Or
	Xor = domain.Xor
)

var (
	// Key matches the table's primary key against a value.
	Key = where.Key
	// Eq matches column = value.
	Eq = where.Eq
	// Cmp matches column <operator> value.
	Cmp = where.Cmp
	// NewSchemaCache creates an empty schema cache.
	NewSchemaCache = schema.NewCache
)

// F is shorthand for a Field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// ConnInfo describes a connection.
type ConnInfo = database.ConnInfo

// ParseParamType maps a type name such as "INT" or "bool" to a ParamType.
// Unknown names map to ParamString.
func ParseParamType(name string) ParamType {
	return domain.ParseParamType(name)
}
