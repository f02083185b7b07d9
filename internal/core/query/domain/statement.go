// Package domain contains the clause model shared by the binder, the WHERE engine,
// the SQL compiler and the public builder.
package domain

// Operation identifies the kind of statement being assembled.
type Operation string

const (
	// OpNone means no statement-starting call has been made.
	OpNone Operation = ""
	// OpSelect is a SELECT statement.
	OpSelect Operation = "SELECT"
	// OpSelectDistinct is a SELECT DISTINCT statement.
	OpSelectDistinct Operation = "SELECT DISTINCT"
	// OpInsert is an INSERT statement.
	OpInsert Operation = "INSERT"
	// OpInsertIgnore is an INSERT IGNORE statement.
	OpInsertIgnore Operation = "INSERT IGNORE"
	// OpReplace is a REPLACE statement.
	OpReplace Operation = "REPLACE"
	// OpUpdate is an UPDATE statement.
	OpUpdate Operation = "UPDATE"
	// OpDelete is a DELETE statement.
	OpDelete Operation = "DELETE"
	// OpRawQuery is caller-supplied SQL text.
	OpRawQuery Operation = "QUERY"
)

// IsSelect reports whether the operation is a SELECT variant.
func (o Operation) IsSelect() bool {
	return o == OpSelect || o == OpSelectDistinct
}

// IsInsert reports whether the operation writes a VALUES row.
func (o Operation) IsInsert() bool {
	return o == OpInsert || o == OpInsertIgnore || o == OpReplace
}

// ColumnEntry is one column of the statement. For SELECT the Name is the rendered
// select expression and Expr is empty; for writes Expr is the value expression.
type ColumnEntry struct {
	Name string
	Expr string
}

// Join is a single JOIN clause attached to a FROM entry.
type Join struct {
	Type  string // e.g. "LEFT JOIN"
	Table string
	On    string
}

// FromEntry is one table in the FROM list with its joins. JoinSQL is a
// pre-rendered join string and takes precedence over Joins when set.
type FromEntry struct {
	Table   string
	JoinSQL string
	Joins   []Join
}

// Limit holds the LIMIT arguments as already formatted text.
type Limit struct {
	Start string
	End   string
}

// Statement is the single mutable query in progress.
type Statement struct {
	Operation Operation
	Table     string
	Columns   []ColumnEntry
	Params    Params
	From      []FromEntry
	Where     Group
	GroupBy   []string
	Having    string
	OrderBy   []string
	Limit     *Limit
	RawQuery  string
}

// NewStatement returns an empty statement.
func NewStatement() *Statement {
	s := &Statement{}
	s.Reset()
	return s
}

// Reset clears every clause field.
func (s *Statement) Reset() {
	s.Operation = OpNone
	s.Table = ""
	s.Columns = nil
	s.Params = Params{}
	s.From = nil
	s.Where = nil
	s.GroupBy = nil
	s.Having = ""
	s.OrderBy = nil
	s.Limit = nil
	s.RawQuery = ""
}

// Start resets the statement and sets the operation and table.
func (s *Statement) Start(op Operation, table string) {
	s.Reset()
	s.Operation = op
	s.Table = table
}

// SetColumn sets the expression of a column. An existing column keeps its position.
func (s *Statement) SetColumn(name, expr string) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			s.Columns[i].Expr = expr
			return
		}
	}
	s.Columns = append(s.Columns, ColumnEntry{Name: name, Expr: expr})
}

// ColumnNames returns the column names in order.
func (s *Statement) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// BindParam stores a binding under name. The last write wins.
func (s *Statement) BindParam(name string, value any, t ParamType) {
	if s.Params == nil {
		s.Params = Params{}
	}
	s.Params[name] = Binding{Value: value, Type: t}
}

// AddFrom appends a FROM entry.
func (s *Statement) AddFrom(entry FromEntry) {
	s.From = append(s.From, entry)
}

// SetWhere replaces the where tree.
func (s *Statement) SetWhere(nodes ...Node) {
	s.Where = append(Group{}, nodes...)
}

// AppendWhere appends op and node to the where tree.
func (s *Statement) AppendWhere(op Op, node Node) {
	s.Where = append(s.Where, op, node)
}
