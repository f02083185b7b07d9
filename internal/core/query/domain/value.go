package domain

// Raw is SQL text spliced into the statement verbatim. No parameter is created.
type Raw string

// Typed binds Value with an explicit parameter type instead of a schema-inferred one.
type Typed struct {
	Value any
	Type  ParamType
}

// Field is one column/value pair of an INSERT, REPLACE or UPDATE. Value may be a Raw,
// a Typed or any plain value, whose type is then inferred from the table schema.
type Field struct {
	Name  string
	Value any
}

// ColumnSpec is one SELECT column. A non-empty Alias renders "<Expr> AS <Alias>".
type ColumnSpec struct {
	Alias string
	Expr  string
}

// Row is one result row keyed by column name.
type Row map[string]any
