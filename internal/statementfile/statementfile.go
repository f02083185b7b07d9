// Package statementfile reads builder statements from YAML files:
//
//	statements:
//	  - name: adults
//	    select: id, name
//	    from: users
//	    match:
//	      - {column: age, op: ">=", value: 18}
//	    order_by: name
//	    limit: 10
//	  - insert: roles
//	    values:
//	      id: admin
//	      created_at: {raw: CURRENT_TIMESTAMP}
//	      level: {value: "3", type: INT}
package statementfile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/satishbabariya/sqlfluent/pkg/client"
)

// File is a parsed statement file.
type File struct {
	Statements []Statement `yaml:"statements"`
}

// Statement describes one builder statement. Exactly one of the operation keys
// (select, select_distinct, insert, insert_ignore, replace, update, delete, query)
// must be set.
type Statement struct {
	Name string `yaml:"name"`

	Select         *string       `yaml:"select"`
	SelectDistinct *string       `yaml:"select_distinct"`
	Columns        []Column      `yaml:"columns"`
	From           StringList    `yaml:"from"`
	Joins          []client.Join `yaml:"joins"`

	Insert       string `yaml:"insert"`
	InsertIgnore string `yaml:"insert_ignore"`
	Replace      string `yaml:"replace"`
	Update       string `yaml:"update"`
	Delete       string `yaml:"delete"`
	Query        string `yaml:"query"`
	Values       Values `yaml:"values"`

	Where    string     `yaml:"where"`
	AndWhere StringList `yaml:"and_where"`
	OrWhere  StringList `yaml:"or_where"`
	Match    []Match    `yaml:"match"`
	GroupBy  StringList `yaml:"group_by"`
	Having   string     `yaml:"having"`
	OrderBy  StringList `yaml:"order_by"`
	Limit    string     `yaml:"limit"`

	Params map[string]Param `yaml:"params"`
}

// Column is an aliased select column.
type Column struct {
	Alias string `yaml:"alias"`
	Expr  string `yaml:"expr"`
}

// Param is an explicitly typed parameter binding.
type Param struct {
	Value any    `yaml:"value"`
	Type  string `yaml:"type"`
}

// Match is one match condition. An empty column targets the primary key.
type Match struct {
	Column   string
	Operator string
	Value    any
}

// UnmarshalYAML decodes {column, op, value}. The value may be a plain scalar,
// {raw: ...} or {value: ..., type: ...}.
func (m *Match) UnmarshalYAML(node *yaml.Node) error {
	var aux struct {
		Column   string    `yaml:"column"`
		Operator string    `yaml:"op"`
		Value    yaml.Node `yaml:"value"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	value, err := decodeValue(&aux.Value)
	if err != nil {
		return err
	}
	*m = Match{Column: aux.Column, Operator: aux.Operator, Value: value}
	return nil
}

// StringList accepts a scalar or a sequence of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// Values is an ordered list of column values, in file order.
type Values []client.Field

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: values must be a mapping", node.Line)
	}
	fields := make(Values, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		value, err := decodeValue(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("values.%s: %w", node.Content[i].Value, err)
		}
		fields = append(fields, client.F(node.Content[i].Value, value))
	}
	*v = fields
	return nil
}

func decodeValue(node *yaml.Node) (any, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	}

	var aux struct {
		Raw   *string `yaml:"raw"`
		Value any     `yaml:"value"`
		Type  string  `yaml:"type"`
	}
	if err := node.Decode(&aux); err != nil {
		return nil, err
	}
	switch {
	case aux.Raw != nil:
		return client.Raw(*aux.Raw), nil
	case aux.Type != "":
		return client.Typed{Value: aux.Value, Type: client.ParseParamType(aux.Type)}, nil
	}
	return nil, fmt.Errorf("line %d: a mapping value needs raw or type", node.Line)
}

// Load reads and validates the statement file at path.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a statement file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if len(f.Statements) == 0 {
		return nil, errors.New("no statements")
	}
	for i := range f.Statements {
		if err := f.Statements[i].Validate(); err != nil {
			return nil, fmt.Errorf("statement %s: %w", f.Statements[i].Label(i), err)
		}
	}
	return &f, nil
}

// Label returns the statement name, or its 1-based position when unnamed.
func (s *Statement) Label(index int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", index+1)
}

// Operation returns the operation key of the statement.
func (s *Statement) Operation() string {
	ops := s.operations()
	if len(ops) != 1 {
		return ""
	}
	return ops[0]
}

func (s *Statement) operations() []string {
	var ops []string
	if s.Select != nil {
		ops = append(ops, "select")
	}
	if s.SelectDistinct != nil {
		ops = append(ops, "select_distinct")
	}
	for key, table := range map[string]string{
		"insert":        s.Insert,
		"insert_ignore": s.InsertIgnore,
		"replace":       s.Replace,
		"update":        s.Update,
		"delete":        s.Delete,
		"query":         s.Query,
	} {
		if table != "" {
			ops = append(ops, key)
		}
	}
	sort.Strings(ops)
	return ops
}

// Validate checks that the statement is well formed.
func (s *Statement) Validate() error {
	switch ops := s.operations(); len(ops) {
	case 0:
		return errors.New("no operation set")
	case 1:
	default:
		return fmt.Errorf("more than one operation set: %s", strings.Join(ops, ", "))
	}

	if s.Where != "" && len(s.Match) > 0 {
		return errors.New("where and match both replace the where clause; use and_where or or_where with match")
	}
	if len(s.Values) > 0 && !s.writes() {
		return fmt.Errorf("values are not allowed for %s", s.Operation())
	}
	if len(s.Columns) > 0 && !s.selects() {
		return fmt.Errorf("columns are not allowed for %s", s.Operation())
	}
	return nil
}

func (s *Statement) selects() bool {
	return s.Select != nil || s.SelectDistinct != nil
}

func (s *Statement) writes() bool {
	return s.Insert != "" || s.InsertIgnore != "" || s.Replace != "" || s.Update != ""
}

// Apply starts the statement on b and applies its clauses.
func (s *Statement) Apply(b *client.Builder) *client.Builder {
	switch {
	case s.Select != nil:
		s.startSelect(b, *s.Select, b.Select, b.SelectSpec)
	case s.SelectDistinct != nil:
		s.startSelect(b, *s.SelectDistinct, b.SelectDistinct, b.SelectDistinctSpec)
	case s.Insert != "":
		b.Insert(s.Insert, s.Values...)
	case s.InsertIgnore != "":
		b.InsertIgnore(s.InsertIgnore, s.Values...)
	case s.Replace != "":
		b.Replace(s.Replace, s.Values...)
	case s.Update != "":
		b.Update(s.Update, s.Values...)
	case s.Delete != "":
		b.Delete(s.Delete)
	case s.Query != "":
		b.Query(s.Query)
	}

	if len(s.Match) > 0 {
		conds := make([]client.Condition, len(s.Match))
		for i, m := range s.Match {
			conds[i] = client.Cmp(m.Column, m.Operator, m.Value)
		}
		b.Match(conds...)
	}
	if s.Where != "" {
		b.Where(s.Where)
	}
	for _, cond := range s.AndWhere {
		b.AndWhere(cond)
	}
	for _, cond := range s.OrWhere {
		b.OrWhere(cond)
	}
	if len(s.GroupBy) > 0 {
		b.GroupBy(s.GroupBy...)
	}
	if s.Having != "" {
		b.Having(s.Having)
	}
	if len(s.OrderBy) > 0 {
		b.OrderBy(s.OrderBy...)
	}
	if s.Limit != "" {
		b.LimitRaw(s.Limit)
	}
	for name, p := range s.Params {
		b.BindParam(name, p.Value, client.ParseParamType(p.Type))
	}
	return b
}

func (s *Statement) startSelect(
	b *client.Builder,
	cols string,
	plain func(string, ...string) *client.Builder,
	spec func([]client.ColumnSpec, ...string) *client.Builder,
) {
	if len(s.Columns) > 0 {
		specs := make([]client.ColumnSpec, len(s.Columns))
		for i, c := range s.Columns {
			specs[i] = client.ColumnSpec{Alias: c.Alias, Expr: c.Expr}
		}
		spec(specs)
	} else {
		plain(cols)
	}

	for i, table := range s.From {
		if i == 0 {
			b.AddFrom(table, s.Joins...)
			continue
		}
		b.AddFrom(table)
	}
}
